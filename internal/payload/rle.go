package payload

import "github.com/simonhull/kretzfile/internal/types"

// ExpandRLE decodes a KRLE v1 stream into exactly want bytes.
//
// The stream is a sequence of runs: a count byte (1..255) followed by one
// element of elemSize bytes, repeated count times. A zero count ends the
// stream and anything after it is ignored. base is the file offset of
// src and is only used in error reports.
func ExpandRLE(src []byte, elemSize, want int, base int64) ([]byte, error) {
	out := make([]byte, 0, want)
	i := 0

	for len(out) < want {
		if i >= len(src) {
			return nil, types.NewFormatError(base+int64(i),
				"rle stream ended after %d of %d bytes", len(out), want)
		}

		count := int(src[i])
		if count == 0 {
			return nil, types.NewFormatError(base+int64(i),
				"rle terminator after %d of %d bytes", len(out), want)
		}
		if i+1+elemSize > len(src) {
			return nil, types.NewFormatError(base+int64(i),
				"rle run value truncated: have %d bytes, need %d", len(src)-i-1, elemSize)
		}
		if len(out)+count*elemSize > want {
			return nil, types.NewFormatError(base+int64(i),
				"rle run of %d overruns volume: %d bytes decoded, %d expected",
				count, len(out)+count*elemSize, want)
		}

		elem := src[i+1 : i+1+elemSize]
		for range count {
			out = append(out, elem...)
		}
		i += 1 + elemSize
	}

	// Exactly full: only a terminator or the end of input may follow.
	if i < len(src) && src[i] != 0 {
		return nil, types.NewFormatError(base+int64(i),
			"rle stream continues past the expected %d bytes", want)
	}

	return out, nil
}
