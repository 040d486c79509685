package gen

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/syssam/tsgen/schema"
)

// Write persists rendered files under the configured output directory,
// in parallel bounded by Workers. Each file lands atomically: content
// goes to a uniquely named temp file first and is renamed into place,
// so a cancelled or failed run never leaves a truncated output behind.
func (c *Config) Write(ctx context.Context, files []File) error {
	if err := os.MkdirAll(c.OutDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(c.Workers)
	for _, f := range files {
		eg.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
				return writeFile(filepath.Join(c.OutDir, f.Name), f.Body)
			}
		})
	}
	return eg.Wait()
}

func writeFile(path, body string) error {
	tmp := path + "." + uuid.NewString() + ".tmp"
	if err := os.WriteFile(tmp, []byte(body), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("rename %s: %w", path, err)
	}
	return nil
}

// Generate renders the snapshot and writes the resulting files.
func (c *Config) Generate(ctx context.Context, snap *schema.Snapshot) error {
	files, err := c.Render(snap)
	if err != nil {
		return err
	}
	return c.Write(ctx, files)
}
