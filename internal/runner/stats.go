package runner

import "github.com/c2h5oh/datasize"

// Stats counts what happened to the listed files.
type Stats struct {
	Listed      int
	Ignored     int // unknown extension
	Undecodable int
	Rejected    int // decoded but not selected
	Matched     int
	Skipped     int // matched, left alone because of a destination conflict
	Failed      int
	Bytes       int64
}

// Size returns the total size of matched files in human readable form.
func (s Stats) Size() string {
	return datasize.ByteSize(s.Bytes).HumanReadable()
}
