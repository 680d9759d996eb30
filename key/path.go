/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package key

import (
	"fmt"
	"net/url"
	"strings"
)

func parsePath(path string) (*Key, error) {
	if path == "" {
		return nil, fmt.Errorf("empty path")
	}
	var k *Key
	for i, segment := range strings.Split(path, pathSeparator) {
		kind, escaped, ok := strings.Cut(segment, kindSeparator)
		if !ok {
			return nil, fmt.Errorf("segment %d has no kind separator", i)
		}
		if !ValidKind(kind) {
			return nil, fmt.Errorf("segment %d has an invalid kind %q", i, kind)
		}
		id, err := url.PathUnescape(escaped)
		if err != nil {
			return nil, fmt.Errorf("segment %d has a badly escaped id", i)
		}
		if id == "" {
			return nil, fmt.Errorf("segment %d has an empty id", i)
		}
		k = New(kind, id, k)
	}
	return k, nil
}
