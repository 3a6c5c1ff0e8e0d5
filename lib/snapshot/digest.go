package snapshot

import (
	"encoding/hex"
	"io"
	"os"

	"github.com/samber/oops"
	"golang.org/x/crypto/blake2b"
)

// FileDigest returns the BLAKE2b-256 digest of the file's content. Content
// equality between trees is decided by comparing these digests, and the
// session report records them per file.
func FileDigest(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, oops.Wrapf(err, "open %s", path)
	}
	defer f.Close()

	h, err := blake2b.New256(nil)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(h, f); err != nil {
		return nil, oops.Wrapf(err, "digest %s", path)
	}
	return h.Sum(nil), nil
}

// DigestString is FileDigest rendered as lowercase hex for reports and logs.
func DigestString(path string) (string, error) {
	sum, err := FileDigest(path)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(sum), nil
}
