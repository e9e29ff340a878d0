package extension

import (
	"archive/zip"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	consts "github.com/khanhnv2901/seca-pin/internal/shared/constants"
	sharedErrors "github.com/khanhnv2901/seca-pin/internal/shared/errors"
	"github.com/khanhnv2901/seca-pin/internal/shared/security"
)

// Package describes a generated extension on disk.
type Package struct {
	Dir      string
	Files    []string
	Manifest Manifest
}

// Build wipes dir and writes manifest.json, content.js and icons/icon.png into it.
func Build(dir string, opts Options) (Package, error) {
	if dir == "" {
		return Package{}, sharedErrors.ErrEmptyExtensionDir
	}

	manifest, err := NewManifest(opts)
	if err != nil {
		return Package{}, err
	}
	manifestData, err := manifest.Marshal()
	if err != nil {
		return Package{}, err
	}
	iconData, err := IconPNG(consts.ExtensionIconSize)
	if err != nil {
		return Package{}, err
	}

	if err := security.CheckRemovable(dir); err != nil {
		return Package{}, err
	}
	if err := os.RemoveAll(dir); err != nil {
		return Package{}, fmt.Errorf("clean extension dir: %w", err)
	}

	files := []struct {
		name string
		data []byte
	}{
		{manifestPath, manifestData},
		{contentScriptPath, []byte(ContentScript())},
		{iconPath, iconData},
	}

	pkg := Package{Dir: dir, Manifest: manifest}
	for _, f := range files {
		target, err := security.ResolveWithin(dir, filepath.FromSlash(f.name))
		if err != nil {
			return Package{}, err
		}
		if err := os.MkdirAll(filepath.Dir(target), consts.DefaultDirPerm); err != nil {
			return Package{}, fmt.Errorf("create %s: %w", filepath.Dir(target), err)
		}
		if err := os.WriteFile(target, f.data, consts.DefaultFilePerm); err != nil {
			return Package{}, fmt.Errorf("write %s: %w", f.name, err)
		}
		pkg.Files = append(pkg.Files, f.name)
	}
	sort.Strings(pkg.Files)

	return pkg, nil
}

// Zip archives the contents of dir (not dir itself) into zipPath using deflate.
func Zip(dir, zipPath string) error {
	if dir == "" {
		return sharedErrors.ErrEmptyExtensionDir
	}
	if zipPath == "" {
		return sharedErrors.ErrEmptyZipPath
	}

	if parent := filepath.Dir(zipPath); parent != "" {
		if err := os.MkdirAll(parent, consts.DefaultDirPerm); err != nil {
			return fmt.Errorf("create %s: %w", parent, err)
		}
	}

	out, err := os.Create(zipPath) // #nosec G304 -- path supplied by the operator
	if err != nil {
		return fmt.Errorf("create zip: %w", err)
	}

	zw := zip.NewWriter(out)
	walkErr := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		name, err := security.ArchiveName(dir, path)
		if err != nil {
			return err
		}
		return addZipEntry(zw, name, path)
	})

	closeErr := zw.Close()
	fileErr := out.Close()
	switch {
	case walkErr != nil:
		return fmt.Errorf("archive %s: %w", dir, walkErr)
	case closeErr != nil:
		return fmt.Errorf("finalize zip: %w", closeErr)
	case fileErr != nil:
		return fmt.Errorf("close zip: %w", fileErr)
	}
	return nil
}

func addZipEntry(zw *zip.Writer, name, path string) error {
	in, err := os.Open(path) // #nosec G304 -- path comes from walking the build dir
	if err != nil {
		return err
	}
	defer in.Close()

	w, err := zw.CreateHeader(&zip.FileHeader{Name: name, Method: zip.Deflate})
	if err != nil {
		return err
	}
	_, err = io.Copy(w, in)
	return err
}
