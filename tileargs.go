package assetconv

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrUsage is wrapped by every error caused by malformed arguments.
var ErrUsage = errors.New("usage error")

// TileArgs holds the positional arguments of the tile command.
type TileArgs struct {
	Source      string
	Destination string
	Width       int
	Height      int
}

// isSize reports whether s would be read as a tile size rather than a
// destination. Leading minus signs are ignored so "-8" is a (bad) size.
func isSize(s string) bool {
	s = strings.TrimLeft(s, "-")
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func parseSize(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid tile size %q", ErrUsage, s)
	}
	if n <= 0 {
		return 0, fmt.Errorf("%w: tile size %d must be positive", ErrUsage, n)
	}
	return n, nil
}

// ParseTileArgs interprets the arguments "<from_path> [dst_path] <size | w h>".
// The argument following the source is only taken as the destination if it
// doesn't look like a number, so a destination made purely of digits can't be
// given; it is always read as a size. root is used when no destination is
// given.
func ParseTileArgs(args []string, root string) (*TileArgs, error) {
	if len(args) < 2 {
		return nil, fmt.Errorf("%w: missing arguments", ErrUsage)
	}

	ta := &TileArgs{
		Source:      args[0],
		Destination: root,
	}

	args = args[1:]
	if !isSize(args[0]) {
		ta.Destination = args[0]
		args = args[1:]
	}

	var err error
	switch len(args) {
	case 1:
		if ta.Width, err = parseSize(args[0]); err != nil {
			return nil, err
		}
		ta.Height = ta.Width
	case 2:
		if ta.Width, err = parseSize(args[0]); err != nil {
			return nil, err
		}
		if ta.Height, err = parseSize(args[1]); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: expected one or two tile sizes, got %d", ErrUsage, len(args))
	}

	return ta, nil
}
