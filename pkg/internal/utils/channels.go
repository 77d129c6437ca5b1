package utils

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// ParseChannels parses a channel list such as "1-4,7,9". The result is sorted and
// free of duplicates. An empty string yields no channels.
func ParseChannels(s string) ([]uint16, error) {
	seen := make(map[uint16]struct{})
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		lo, hi := part, part
		if i := strings.Index(part, "-"); i > 0 {
			lo, hi = strings.TrimSpace(part[:i]), strings.TrimSpace(part[i+1:])
		}
		from, err := parseChannel(lo)
		if err != nil {
			return nil, err
		}
		to, err := parseChannel(hi)
		if err != nil {
			return nil, err
		}
		if to < from {
			return nil, fmt.Errorf("channel range %q is reversed", part)
		}
		for ch := int(from); ch <= int(to); ch++ {
			seen[uint16(ch)] = struct{}{}
		}
	}
	out := make([]uint16, 0, len(seen))
	for ch := range seen {
		out = append(out, ch)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out, nil
}

func parseChannel(s string) (uint16, error) {
	v, err := strconv.ParseUint(s, 10, 16)
	if err != nil || v > math.MaxUint16 {
		return 0, fmt.Errorf("invalid channel %q", s)
	}
	return uint16(v), nil
}

// FormatChannels renders channels as a comma separated list.
func FormatChannels(channels []uint16) string {
	parts := make([]string, len(channels))
	for i, ch := range channels {
		parts[i] = strconv.Itoa(int(ch))
	}
	return strings.Join(parts, ",")
}
