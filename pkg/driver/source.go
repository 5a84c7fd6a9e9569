package driver

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// Source is a script: a name used in diagnostics and its lines.
type Source struct {
	Name  string
	Lines []string
}

// ReadSource splits r into lines. Trailing carriage returns are dropped.
func ReadSource(name string, r io.Reader) (*Source, error) {
	src := &Source{Name: name}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		src.Lines = append(src.Lines, strings.TrimRight(scanner.Text(), "\r"))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return src, nil
}

// LoadFile reads a script from disk. "-" reads standard input.
func LoadFile(path string) (*Source, error) {
	if path == "-" {
		return ReadSource("<stdin>", os.Stdin)
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()
	return ReadSource(path, file)
}

// GitSource locates a script inside a git repository. At most one of Rev, Tag
// and Branch may be set; with none the default branch HEAD is used. Branches
// are resolved through the clone's remote-tracking refs.
type GitSource struct {
	URL    string
	Rev    string
	Tag    string
	Branch string
	Path   string
}

func (g GitSource) revision() (plumbing.Revision, error) {
	var set []string
	var rev plumbing.Revision
	if r := strings.TrimSpace(g.Rev); r != "" {
		set = append(set, "rev")
		rev = plumbing.Revision(r)
	}
	if tag := strings.TrimSpace(g.Tag); tag != "" {
		set = append(set, "tag")
		rev = plumbing.Revision("refs/tags/" + tag)
	}
	if branch := strings.TrimSpace(g.Branch); branch != "" {
		set = append(set, "branch")
		rev = plumbing.Revision("refs/remotes/" + git.DefaultRemoteName + "/" + branch)
	}
	switch len(set) {
	case 0:
		return plumbing.Revision(plumbing.HEAD), nil
	case 1:
		return rev, nil
	default:
		return "", fmt.Errorf("git source accepts only one of rev, tag, branch (got %s)", strings.Join(set, ", "))
	}
}

// Name is the label used in diagnostics, e.g. url@tag:path.
func (g GitSource) Name() string {
	ref := "HEAD"
	switch {
	case g.Rev != "":
		ref = g.Rev
	case g.Tag != "":
		ref = g.Tag
	case g.Branch != "":
		ref = g.Branch
	}
	return fmt.Sprintf("%s@%s:%s", g.URL, ref, g.Path)
}

// Fetch clones the repository into a temporary directory, checks out the
// requested revision and reads the script. The clone is removed afterwards.
func (g GitSource) Fetch(ctx context.Context) (*Source, error) {
	if strings.TrimSpace(g.URL) == "" {
		return nil, fmt.Errorf("git source requires a url")
	}
	rel := filepath.Clean(filepath.FromSlash(strings.TrimSpace(g.Path)))
	if rel == "." || filepath.IsAbs(rel) || strings.HasPrefix(rel, ".."+string(filepath.Separator)) || rel == ".." {
		return nil, fmt.Errorf("git source path %q must be relative to the repository root", g.Path)
	}
	revision, err := g.revision()
	if err != nil {
		return nil, err
	}

	tmpDir, err := os.MkdirTemp("", "stacklang-git-*")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(tmpDir)

	repo, err := git.PlainCloneContext(ctx, tmpDir, false, &git.CloneOptions{
		URL: g.URL,
	})
	if err != nil {
		return nil, fmt.Errorf("git clone %s: %w", g.URL, err)
	}

	hash, err := repo.ResolveRevision(revision)
	if err != nil {
		return nil, fmt.Errorf("resolve revision %s: %w", revision, err)
	}
	worktree, err := repo.Worktree()
	if err != nil {
		return nil, err
	}
	if err := worktree.Checkout(&git.CheckoutOptions{
		Hash:  *hash,
		Force: true,
	}); err != nil {
		return nil, fmt.Errorf("git checkout %s: %w", revision, err)
	}

	file, err := os.Open(filepath.Join(tmpDir, rel))
	if err != nil {
		return nil, fmt.Errorf("open %s in %s: %w", g.Path, g.URL, err)
	}
	defer file.Close()
	return ReadSource(g.Name(), file)
}
