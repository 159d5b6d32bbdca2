package storage

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Identifiers are "<prefix>_<unixMillis>_<6-char base36 random>", e.g.
// "doc_1714089632000_k3x9qa". No uniqueness check is performed against
// existing entities; with 36^6 random suffixes per millisecond a collision is
// accepted as practically impossible.

const (
	docIDPrefix    = "doc"
	folderIDPrefix = "folder"
	idRandomLen    = 6
)

const base36Alphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// NewDocumentID returns a fresh document identifier.
func NewDocumentID() string {
	return newID(docIDPrefix)
}

// NewFolderID returns a fresh folder identifier.
func NewFolderID() string {
	return newID(folderIDPrefix)
}

func newID(prefix string) string {
	return fmt.Sprintf("%s_%d_%s", prefix, time.Now().UnixMilli(), randomBase36(idRandomLen))
}

func randomBase36(n int) string {
	var b [8]byte
	_, _ = rand.Read(b[:])
	v := binary.BigEndian.Uint64(b[:])
	out := make([]byte, n)
	for i := range out {
		out[i] = base36Alphabet[v%36]
		v /= 36
	}
	return string(out)
}

// IsDocumentID reports whether s has the shape of a document identifier.
func IsDocumentID(s string) bool {
	return isID(s, docIDPrefix)
}

// IsFolderID reports whether s has the shape of a folder identifier.
func IsFolderID(s string) bool {
	return isID(s, folderIDPrefix)
}

func isID(s, prefix string) bool {
	rest, ok := strings.CutPrefix(s, prefix+"_")
	if !ok {
		return false
	}
	ts, rnd, ok := strings.Cut(rest, "_")
	if !ok || ts == "" || rnd == "" {
		return false
	}
	if _, err := strconv.ParseInt(ts, 10, 64); err != nil {
		return false
	}
	for i := range len(rnd) {
		c := rnd[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'z') {
			return false
		}
	}
	return true
}
