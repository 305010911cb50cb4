// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package hibp

import (
	"bufio"
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
)

const (
	// PrefixLen is the number of hash characters sent to the range API.
	PrefixLen = 5
	hashLen   = sha1.Size * 2
)

var (
	ErrInvalidHash  = errors.New("input is not a valid SHA1 Hexadecimal hash")
	ErrInvalidCount = errors.New("invalid count in range record")

	sha1Hex = regexp.MustCompile("^[a-fA-F\\d]{40}$")
)

// HashRange splits the uppercase SHA-1 hex digest of the UTF-8 password into
// the 5 character prefix sent over the wire and the 35 character suffix that
// is matched locally.
func HashRange(password string) (prefix string, suffix string) {
	sum := sha1.Sum([]byte(password))
	return splitHash(strings.ToUpper(hex.EncodeToString(sum[:])))
}

// SplitHash does the same split for a password that is already hashed.
func SplitHash(hash string) (prefix string, suffix string, err error) {
	if !sha1Hex.MatchString(hash) {
		return "", "", ErrInvalidHash
	}

	prefix, suffix = splitHash(strings.ToUpper(hash))
	return prefix, suffix, nil
}

func splitHash(hash string) (string, string) {
	return hash[:PrefixLen], hash[PrefixLen:hashLen]
}

// ParseRange scans a range response body, one SUFFIX:COUNT record per line,
// for the given suffix. Lines without a separator are skipped. The first
// matching record decides the result.
func ParseRange(body io.Reader, suffix string) Result {
	scanner := bufio.NewScanner(body)
	for scanner.Scan() {
		suf, count, ok := strings.Cut(scanner.Text(), ":")
		if !ok {
			continue
		}

		if !strings.EqualFold(strings.TrimSpace(suf), suffix) {
			continue
		}

		n, err := strconv.Atoi(strings.TrimSpace(count))
		if err != nil {
			return failed(fmt.Errorf("%w: %s", ErrInvalidCount, err))
		}

		switch {
		case n < 0:
			return failed(fmt.Errorf("%w: %d", ErrInvalidCount, n))
		case n == 0:
			// Padding records carry a zero count.
			return notFound()
		default:
			return found(n)
		}
	}

	if err := scanner.Err(); err != nil {
		return failed(err)
	}

	return notFound()
}
