package archive

import "testing"

func TestNewS3StoreValidation(t *testing.T) {
	cases := []struct {
		name string
		cfg  S3Config
	}{
		{"missing endpoint", S3Config{AccessKey: "a", SecretKey: "s", Bucket: "b"}},
		{"missing keys", S3Config{Endpoint: "minio:9000", Bucket: "b"}},
		{"missing bucket", S3Config{Endpoint: "minio:9000", AccessKey: "a", SecretKey: "s"}},
	}
	for _, c := range cases {
		if _, err := NewS3Store(c.cfg); err == nil {
			t.Fatalf("%s: expected error", c.name)
		}
	}
}

func TestObjectKey(t *testing.T) {
	if got := objectKey("abc-1"); got != "invocations/abc-1/response.txt" {
		t.Fatalf("unexpected key %q", got)
	}
}
