package stream

import (
	"strconv"
	"strings"
)

// ByteRange is an inclusive span of bytes within a resource.
type ByteRange struct {
	Start int64
	End   int64
}

func (r ByteRange) Length() int64 {
	return r.End - r.Start + 1
}

// ParseRange interprets the value of a Range request header against a
// resource of the given size. It returns nil when no byte range was
// requested, which includes headers without the "bytes=" unit.
//
// Malformed numeric tokens are never an error: an unparsable start falls
// back to 0 and an unparsable or absent end falls back to a window of at
// most chunkSize bytes, clamped to the resource. Suffix ranges ("-N")
// select the last N bytes. Only the first range of a set is honored.
//
// The candidate is not validated here, Decide is the single authority on
// whether it can be served.
func ParseRange(header string, size, chunkSize int64) *ByteRange {
	spec, ok := strings.CutPrefix(header, "bytes=")
	if !ok {
		return nil
	}

	// multiple ranges are not supported, honor the first one
	spec, _, _ = strings.Cut(spec, ",")

	if last, ok := strings.CutPrefix(spec, "-"); ok {
		n, err := strconv.ParseInt(last, 10, 64)
		if err != nil {
			n = 0
		}

		// a suffix longer than the resource drives Start negative, Decide
		// rejects it
		return &ByteRange{
			Start: size - n,
			End:   size - 1,
		}
	}

	startToken, endToken, _ := strings.Cut(spec, "-")

	start, err := strconv.ParseInt(startToken, 10, 64)
	if err != nil || start < 0 {
		start = 0
	}

	end, err := strconv.ParseInt(endToken, 10, 64)
	if err != nil {
		end = min(start+chunkSize, size) - 1
	}

	return &ByteRange{
		Start: start,
		End:   end,
	}
}

// Delivery is the selected response mode for a request.
type Delivery int

const (
	// FullBody serves the entire resource.
	FullBody Delivery = iota
	// PartialBody serves exactly the candidate range.
	PartialBody
	// NotSatisfiable rejects the candidate range.
	NotSatisfiable
)

// Decide validates a candidate range against the resource size and selects
// the delivery mode. A nil candidate means no range was requested. Any
// candidate whose end reaches past the resource is rejected, as are the
// degenerate ranges an oversized suffix or an inverted span can produce.
func Decide(candidate *ByteRange, size int64) Delivery {
	switch {
	case candidate == nil:
		return FullBody
	case candidate.Start < 0 || candidate.Start > candidate.End || candidate.End >= size:
		return NotSatisfiable
	default:
		return PartialBody
	}
}
