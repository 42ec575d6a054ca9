package commands

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gosimple/slug"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/mush/internal/editor"
	"github.com/thoreinstein/mush/internal/errors"
	"github.com/thoreinstein/mush/internal/paths"
	"github.com/thoreinstein/mush/pkg/fileutil"
	"github.com/thoreinstein/mush/pkg/frontmatter"
)

// ErrEmptyTitle is returned when a title slugs to nothing.
var ErrEmptyTitle = errors.New("title must contain at least one letter or digit")

// sourceHeader is the frontmatter written into scaffolded sources.
type sourceHeader struct {
	Name        string `yaml:"name,omitempty"`
	Description string `yaml:"description,omitempty"`
}

type newOptions struct {
	description string
	force       bool
	edit        bool
}

// sourceKind describes one scaffoldable source type.
type sourceKind struct {
	use   string
	short string
	// path returns the file for name, relative to the layout.
	path func(l paths.Layout, name string) string
	// named reports whether the header carries the name.
	named bool
}

func newNewCommand(root *rootOptions) *cobra.Command {
	c := &cobra.Command{
		Use:   "new",
		Short: "Scaffold a skill, agent or command under .mush/",
		Long: `Create a new canonical source file. The file name is derived from the
title: "Code Review" becomes code-review.`,
	}

	kinds := []sourceKind{
		{
			use:   "skill",
			short: "Create .mush/skills/<name>/SKILL.md",
			path: func(l paths.Layout, name string) string {
				return filepath.Join(l.Skills(), name, paths.SkillFileName)
			},
			named: true,
		},
		{
			use:   "agent",
			short: "Create .mush/agents/<name>.md",
			path: func(l paths.Layout, name string) string {
				return filepath.Join(l.Agents(), name+".md")
			},
			named: true,
		},
		{
			use:   "command",
			short: "Create .mush/commands/<name>.md",
			path: func(l paths.Layout, name string) string {
				return filepath.Join(l.Commands(), name+".md")
			},
		},
	}
	for _, k := range kinds {
		c.AddCommand(newSourceCommand(root, k))
	}
	return c
}

func newSourceCommand(root *rootOptions, kind sourceKind) *cobra.Command {
	opts := &newOptions{}

	c := &cobra.Command{
		Use:     kind.use + " <title>",
		Short:   kind.short,
		Args:    cobra.MinimumNArgs(1),
		Example: fmt.Sprintf(`  mush new %s "Code Review" --description "Review staged changes"`, kind.use),
		RunE: func(c *cobra.Command, args []string) error {
			out := newPrinter(c.OutOrStdout(), root.quiet)

			dir, err := root.root()
			if err != nil {
				return err
			}
			layout := paths.NewLayout(dir)
			if !layout.Initialized() {
				return errors.NewUserError(errors.ErrNotInitialized, "Run: mush install")
			}

			title := strings.Join(args, " ")
			name := slug.Make(title)
			if name == "" {
				return errors.NewUserError(errors.Wrapf(ErrEmptyTitle, "%q", title), "")
			}

			target := kind.path(layout, name)
			if fileutil.Exists(target) && !opts.force {
				return errors.NewUserError(
					errors.Newf("%s already exists", layout.Rel(target)),
					"pass --force to overwrite it")
			}

			header := sourceHeader{Description: opts.description}
			if kind.named {
				header.Name = name
			}
			body := scaffoldBody(kind.use, title)
			data := []byte(body)
			if header != (sourceHeader{}) {
				if data, err = frontmatter.Format(header, body); err != nil {
					return err
				}
			}
			if err := fileutil.AtomicWriteFile(target, data, fileutil.FilePerm); err != nil {
				return errors.NewSystemError(err, "check directory permissions")
			}

			out.Success("Created %s", layout.Rel(target))
			if opts.edit {
				if err := openInEditor(c, target); err != nil {
					return err
				}
			}
			out.Printf("Run mush update to project it into your tools.\n")
			return nil
		},
	}
	c.Flags().StringVarP(&opts.description, "description", "d", "", "one-line description")
	c.Flags().BoolVarP(&opts.force, "force", "f", false, "overwrite an existing file")
	c.Flags().BoolVarP(&opts.edit, "edit", "e", false, "open the new file in $MUSH_EDITOR or $EDITOR")
	return c
}

func openInEditor(c *cobra.Command, path string) error {
	ed, err := editor.Detect()
	if err != nil {
		return errors.NewUserError(err, "set $EDITOR or drop --edit")
	}
	ed.Stdin, ed.Stdout, ed.Stderr = c.InOrStdin(), c.OutOrStdout(), c.ErrOrStderr()
	if err := ed.Open(c.Context(), path); err != nil {
		return errors.NewSystemError(err, "the file was created; edit it manually")
	}
	return nil
}

func scaffoldBody(kind, title string) string {
	switch kind {
	case "skill":
		return fmt.Sprintf("# %s\n\nDescribe when to use this skill and the steps to follow.\n", title)
	case "agent":
		return fmt.Sprintf("You are %s.\n\nDescribe the agent's responsibilities and constraints.\n", title)
	default:
		return fmt.Sprintf("# %s\n\nDescribe what this command should do. Use $ARGUMENTS for input.\n", title)
	}
}
