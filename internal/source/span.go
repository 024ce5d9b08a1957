package source

import "strconv"

// Span is the half-open byte range [Start, End) in File.
type Span struct {
	File  FileID
	Start uint32
	End   uint32
}

func (s Span) Empty() bool { return s.End <= s.Start }

func (s Span) Len() uint32 {
	if s.Empty() {
		return 0
	}
	return s.End - s.Start
}

// Contains is half-open: End itself is outside.
func (s Span) Contains(off uint32) bool { return s.Start <= off && off < s.End }

// Cover extends s to include other. Spans of another file leave s as is.
func (s Span) Cover(other Span) Span {
	if s.File == other.File {
		s.Start = min(s.Start, other.Start)
		s.End = max(s.End, other.End)
	}
	return s
}

func (s Span) String() string {
	return strconv.FormatUint(uint64(s.File), 10) + ":" +
		strconv.FormatUint(uint64(s.Start), 10) + "-" +
		strconv.FormatUint(uint64(s.End), 10)
}
