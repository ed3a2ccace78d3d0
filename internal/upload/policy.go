// Package upload centralizes the attachment policy: one size limit and
// extension allow-list per storage bucket, instead of literals scattered
// across call sites.
package upload

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

const (
	BucketAvatars    = "avatars"
	BucketImages     = "images"
	BucketTaskFiles  = "task_files"
	BucketGroupFiles = "group_files"
)

const (
	imageExts    = ".jpg,.jpeg,.png,.gif,.webp"
	documentExts = ".pdf,.doc,.docx,.txt,.zip,.jpg,.jpeg,.png,.gif,.webp"
)

// Rule is the validation policy for one bucket.
type Rule struct {
	MaxBytes    int64
	AllowedExts string
}

// Policy maps bucket names to their rules.
type Policy map[string]Rule

// DefaultPolicy returns the built-in limits, with per-bucket overrides
// read from UPLOAD_LIMIT_<BUCKET>_MB environment variables.
func DefaultPolicy() Policy {
	p := Policy{
		BucketAvatars:    {MaxBytes: 2 * 1024 * 1024, AllowedExts: imageExts},
		BucketImages:     {MaxBytes: 5 * 1024 * 1024, AllowedExts: imageExts},
		BucketTaskFiles:  {MaxBytes: 20 * 1024 * 1024, AllowedExts: documentExts},
		BucketGroupFiles: {MaxBytes: 20 * 1024 * 1024, AllowedExts: documentExts},
	}

	for bucket, rule := range p {
		key := "UPLOAD_LIMIT_" + strings.ToUpper(bucket) + "_MB"
		if raw := os.Getenv(key); raw != "" {
			if mb, err := strconv.ParseInt(raw, 10, 64); err == nil && mb > 0 {
				rule.MaxBytes = mb * 1024 * 1024
				p[bucket] = rule
			}
		}
	}
	return p
}

// Validate checks a candidate file against the bucket's rule before any
// byte is written. It returns a user-facing message on rejection.
func (p Policy) Validate(bucket, filename string, size int64) error {
	rule, ok := p[bucket]
	if !ok {
		return fmt.Errorf("unknown bucket %q", bucket)
	}

	if size > rule.MaxBytes {
		return fmt.Errorf("file size exceeds limit of %dMB (uploaded: %.2fMB)",
			rule.MaxBytes/(1024*1024), float64(size)/(1024*1024))
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if !extAllowed(rule.AllowedExts, ext) {
		return fmt.Errorf("file extension %s not allowed for bucket %s", ext, bucket)
	}
	return nil
}

// extAllowed matches ext against whole entries of the comma-joined list;
// a substring like ".jpe" must not pass on the strength of ".jpeg".
func extAllowed(allowed, ext string) bool {
	if ext == "" {
		return false
	}
	for _, a := range strings.Split(allowed, ",") {
		if ext == a {
			return true
		}
	}
	return false
}

// Known reports whether bucket has a rule.
func (p Policy) Known(bucket string) bool {
	_, ok := p[bucket]
	return ok
}
