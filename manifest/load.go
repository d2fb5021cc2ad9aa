// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package manifest

import (
	"context"

	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"github.com/vk/optionkit/internal/ctxlog"
	"github.com/vk/optionkit/internal/fsutil"
)

// Extension is the file extension searched for in directories.
const Extension = ".hcl"

// Load reads every manifest found under paths, files or directories, and
// builds a single Catalog from them. Schemas may extend schemas from other
// files in the same load.
func Load(ctx context.Context, paths ...string) (*Catalog, error) {
	return LoadFS(ctx, afero.NewOsFs(), paths...)
}

// LoadFS is Load against an arbitrary file system.
func LoadFS(ctx context.Context, fsys afero.Fs, paths ...string) (*Catalog, error) {
	logger := ctxlog.FromContext(ctx)

	files, err := fsutil.ExpandPaths(fsys, paths, Extension)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find manifest files")
	}
	if len(files) == 0 {
		logger.Warn("No manifest files found.", "paths", paths)
	}
	logger.Debug("Found manifest files.", "files", files)

	parser := hclparse.NewParser()
	var decls []*schemaDecl
	for _, path := range files {
		src, err := afero.ReadFile(fsys, path)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read manifest %s", path)
		}
		file, diags := parser.ParseHCL(src, path)
		if diags.HasErrors() {
			return nil, errors.Wrapf(diags, "failed to parse manifest %s", path)
		}
		fileDecls, diags := parseBody(file.Body)
		if diags.HasErrors() {
			return nil, errors.Wrapf(diags, "invalid manifest %s", path)
		}
		decls = append(decls, fileDecls...)
	}

	return finish(ctx, decls)
}

// LoadBytes builds a Catalog from a single in-memory manifest. filename is
// only used in diagnostics.
func LoadBytes(ctx context.Context, filename string, src []byte) (*Catalog, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, errors.Wrapf(diags, "failed to parse manifest %s", filename)
	}
	decls, diags := parseBody(file.Body)
	if diags.HasErrors() {
		return nil, errors.Wrapf(diags, "invalid manifest %s", filename)
	}
	return finish(ctx, decls)
}

func finish(ctx context.Context, decls []*schemaDecl) (*Catalog, error) {
	cat, diags := buildCatalog(ctx, decls)
	if diags.HasErrors() {
		return nil, errors.WithStack(diags)
	}
	ctxlog.FromContext(ctx).Info("Manifests loaded.", "schemas", cat.Len())
	return cat, nil
}
