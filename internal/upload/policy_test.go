package upload

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultPolicyLimits(t *testing.T) {
	p := DefaultPolicy()

	assert.Equal(t, int64(2*1024*1024), p[BucketAvatars].MaxBytes)
	assert.Equal(t, int64(5*1024*1024), p[BucketImages].MaxBytes)
	assert.Equal(t, int64(20*1024*1024), p[BucketTaskFiles].MaxBytes)
	assert.Equal(t, int64(20*1024*1024), p[BucketGroupFiles].MaxBytes)
}

func TestDefaultPolicyEnvOverride(t *testing.T) {
	t.Setenv("UPLOAD_LIMIT_IMAGES_MB", "8")
	p := DefaultPolicy()

	assert.Equal(t, int64(8*1024*1024), p[BucketImages].MaxBytes)
	// other buckets keep their defaults
	assert.Equal(t, int64(2*1024*1024), p[BucketAvatars].MaxBytes)
}

func TestDefaultPolicyBadOverrideIgnored(t *testing.T) {
	t.Setenv("UPLOAD_LIMIT_IMAGES_MB", "not-a-number")
	p := DefaultPolicy()
	assert.Equal(t, int64(5*1024*1024), p[BucketImages].MaxBytes)
}

func TestValidate(t *testing.T) {
	p := DefaultPolicy()

	tests := []struct {
		name     string
		bucket   string
		filename string
		size     int64
		wantErr  bool
	}{
		{"image under limit", BucketImages, "photo.jpg", 4 * 1024 * 1024, false},
		{"image at limit", BucketImages, "photo.png", 5 * 1024 * 1024, false},
		{"image over limit", BucketImages, "photo.jpg", 5*1024*1024 + 1, true},
		{"avatar over its smaller limit", BucketAvatars, "me.png", 3 * 1024 * 1024, true},
		{"task pdf under limit", BucketTaskFiles, "homework.pdf", 19 * 1024 * 1024, false},
		{"task file over limit", BucketTaskFiles, "huge.zip", 21 * 1024 * 1024, true},
		{"disallowed extension", BucketImages, "notes.pdf", 1024, true},
		{"substring of an allowed extension", BucketImages, "photo.jpe", 1024, true},
		{"prefix of an allowed extension", BucketTaskFiles, "paper.do", 1024, true},
		{"no extension", BucketImages, "raw", 1024, true},
		{"uppercase extension accepted", BucketImages, "PHOTO.JPG", 1024, false},
		{"unknown bucket", "mystery", "a.jpg", 1024, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := p.Validate(tt.bucket, tt.filename, tt.size)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestKnown(t *testing.T) {
	p := DefaultPolicy()
	assert.True(t, p.Known(BucketImages))
	assert.False(t, p.Known("uploads"))
}
