package values

import (
	"strings"
	"testing"
)

func TestParseDigest(t *testing.T) {
	valid := "sha256:" + strings.Repeat("ab", 32)

	d, err := ParseDigest(valid)
	if err != nil {
		t.Fatal(err)
	}
	if d.Algorithm() != "sha256" {
		t.Errorf("Algorithm() = %v", d.Algorithm())
	}
	if d.String() != valid {
		t.Errorf("String() = %v, want %v", d.String(), valid)
	}

	for _, bad := range []string{
		"nocolon",
		"md5:abcd",
		"sha256:not-hex!",
	} {
		if _, err := ParseDigest(bad); err == nil {
			t.Errorf("ParseDigest(%q) should fail", bad)
		}
	}
}

func TestComputeDigest(t *testing.T) {
	// sha256("hello")
	const want = "sha256:2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824"

	d, err := ComputeDigest("sha256", strings.NewReader("hello"))
	if err != nil {
		t.Fatal(err)
	}
	if d.String() != want {
		t.Errorf("ComputeDigest = %v, want %v", d.String(), want)
	}

	same, err := ParseDigest(want)
	if err != nil {
		t.Fatal(err)
	}
	if !d.Equals(same) {
		t.Error("computed and parsed digests must be equal")
	}

	if _, err := ComputeDigest("crc32", strings.NewReader("x")); err == nil {
		t.Error("unsupported algorithm should fail")
	}
}

func TestDigestIsZero(t *testing.T) {
	var zero Digest
	if !zero.IsZero() {
		t.Error("zero value must report IsZero")
	}

	d, err := NewDigest("sha256", "ff")
	if err != nil {
		t.Fatal(err)
	}
	if d.IsZero() {
		t.Error("constructed digest must not report IsZero")
	}
}
