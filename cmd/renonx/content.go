package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"renonx-go/internal/app"
	"renonx-go/internal/cms"
)

// settings command
var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage site settings",
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the site settings as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, "GetSettings", func(ctx context.Context, a *app.App) error {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(a.Store().GetSettings(ctx))
		})
	},
}

// skills command
var skillsCmd = &cobra.Command{
	Use:   "skills",
	Short: "Manage skills",
}

var skillsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List skills",
	RunE: func(cmd *cobra.Command, args []string) error {
		category, _ := cmd.Flags().GetString("category")

		return withApp(cmd, "ListSkills", func(ctx context.Context, a *app.App) error {
			skills := cms.FilterSkills(a.Store().GetSkills(ctx), category)
			if len(skills) == 0 {
				fmt.Println("No skills.")
				return nil
			}
			for _, s := range skills {
				fmt.Printf("%-10s  %-24s  %3d%%  %s\n", s.ID, s.Name, s.Level, s.Category)
			}
			return nil
		})
	},
}

var skillsAddCmd = &cobra.Command{
	Use:   "add NAME",
	Short: "Add a skill",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		level, _ := cmd.Flags().GetInt("level")
		category, _ := cmd.Flags().GetString("category")

		skill := cms.Skill{
			ID:       uuid.New().String(),
			Name:     args[0],
			Level:    level,
			Category: cms.SkillCategory(category),
		}
		return withApp(cmd, "AddSkill", func(ctx context.Context, a *app.App) error {
			if err := a.Store().AddSkill(ctx, skill); err != nil {
				return err
			}
			fmt.Printf("Added skill %s (%s)\n", skill.Name, skill.ID)
			return nil
		})
	},
}

var skillsRmCmd = &cobra.Command{
	Use:   "rm ID",
	Short: "Delete a skill",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, "DeleteSkill", func(ctx context.Context, a *app.App) error {
			return a.Store().DeleteSkill(ctx, args[0])
		})
	},
}

// projects command
var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "Manage projects",
}

var projectsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List projects, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		category, _ := cmd.Flags().GetString("category")

		return withApp(cmd, "ListProjects", func(ctx context.Context, a *app.App) error {
			projects := cms.FilterProjects(a.Store().GetProjects(ctx), category)
			if len(projects) == 0 {
				fmt.Println("No projects.")
				return nil
			}
			for _, p := range projects {
				fmt.Printf("%-10s  %s  %-10s  %s\n", p.ID, p.Date, p.Category, p.Title)
			}
			return nil
		})
	},
}

var projectsAddCmd = &cobra.Command{
	Use:   "add TITLE",
	Short: "Add a project",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		description, _ := flags.GetString("description")
		category, _ := flags.GetString("category")
		link, _ := flags.GetString("link")
		github, _ := flags.GetString("github")
		image, _ := flags.GetString("image")

		project := cms.Project{
			ID:          uuid.New().String(),
			Title:       args[0],
			Description: description,
			Category:    cms.ProjectCategory(category),
			ImageURL:    image,
			Link:        link,
			GitHub:      github,
			Date:        time.Now().Format("2006-01-02"),
		}
		return withApp(cmd, "AddProject", func(ctx context.Context, a *app.App) error {
			if err := a.Store().AddProject(ctx, project); err != nil {
				return err
			}
			fmt.Printf("Added project %s (%s)\n", project.Title, project.ID)
			return nil
		})
	},
}

var projectsRmCmd = &cobra.Command{
	Use:   "rm ID",
	Short: "Delete a project",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, "DeleteProject", func(ctx context.Context, a *app.App) error {
			return a.Store().DeleteProject(ctx, args[0])
		})
	},
}

var projectsPreviewCmd = &cobra.Command{
	Use:   "preview ID",
	Short: "Point a project's image at a screenshot of its link",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, "SyncPreview", func(ctx context.Context, a *app.App) error {
			url, err := a.Store().SyncProjectPreview(ctx, args[0])
			if err != nil {
				return err
			}
			fmt.Println(url)
			return nil
		})
	},
}

// blogs command
var blogsCmd = &cobra.Command{
	Use:   "blogs",
	Short: "Manage blog posts",
}

var blogsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List blog posts, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, "ListBlogs", func(ctx context.Context, a *app.App) error {
			blogs := a.Store().GetBlogs(ctx)
			if len(blogs) == 0 {
				fmt.Println("No blog posts.")
				return nil
			}
			for _, b := range blogs {
				fmt.Printf("%-10s  %s  %s\n", b.ID, b.Date, b.Title)
			}
			return nil
		})
	},
}

var blogsShowCmd = &cobra.Command{
	Use:   "show ID",
	Short: "Print a blog post",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, "GetBlog", func(ctx context.Context, a *app.App) error {
			b, ok := a.Store().GetBlog(ctx, args[0])
			if !ok {
				return fmt.Errorf("blog %s: %w", args[0], cms.ErrNotFound)
			}
			fmt.Printf("%s\n%s by %s  [%s]\n\n%s\n", b.Title, b.Date, b.Author, strings.Join(b.Tags, ", "), b.Content)
			return nil
		})
	},
}

var blogsRmCmd = &cobra.Command{
	Use:   "rm ID",
	Short: "Delete a blog post",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, "DeleteBlog", func(ctx context.Context, a *app.App) error {
			return a.Store().DeleteBlog(ctx, args[0])
		})
	},
}

// upload command
var uploadCmd = &cobra.Command{
	Use:   "upload FILE",
	Short: "Upload an image to the asset bucket",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, "Upload", func(ctx context.Context, a *app.App) error {
			url, err := a.UploadFile(ctx, args[0])
			if err != nil {
				return err
			}
			fmt.Println(url)
			return nil
		})
	},
}

// export command
var exportCmd = &cobra.Command{
	Use:   "export FILE",
	Short: "Write all content to a snapshot file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		encrypt, _ := cmd.Flags().GetBool("encrypt")

		var passphrase string
		if encrypt {
			var err error
			if passphrase, err = readSecret("Passphrase: "); err != nil {
				return err
			}
		}

		return withApp(cmd, "Export", func(ctx context.Context, a *app.App) error {
			f, err := os.Create(args[0])
			if err != nil {
				return fmt.Errorf("creating %s: %w", args[0], err)
			}
			if err := a.Export(ctx, f, passphrase); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("closing %s: %w", args[0], err)
			}
			fmt.Printf("Exported to %s\n", args[0])
			return nil
		})
	},
}

// import command
var importCmd = &cobra.Command{
	Use:   "import FILE",
	Short: "Merge a snapshot file into the content store",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, "Import", func(ctx context.Context, a *app.App) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("opening %s: %w", args[0], err)
			}
			defer f.Close()

			n, err := a.Import(ctx, f, func() (string, error) { return readSecret("Passphrase: ") })
			if err != nil {
				return err
			}
			fmt.Printf("Imported %d record(s)\n", n)
			return nil
		})
	},
}

func addContentCommands() {
	settingsCmd.AddCommand(settingsShowCmd)

	skillsCmd.AddCommand(skillsListCmd)
	skillsListCmd.Flags().StringP("category", "c", "", "Only show this category")
	skillsCmd.AddCommand(skillsAddCmd)
	skillsAddCmd.Flags().IntP("level", "l", 50, "Proficiency percentage (0-100)")
	skillsAddCmd.Flags().StringP("category", "c", string(cms.SkillWebDev), "Skill category")
	skillsCmd.AddCommand(skillsRmCmd)

	projectsCmd.AddCommand(projectsListCmd)
	projectsListCmd.Flags().StringP("category", "c", "", "Only show this category")
	projectsCmd.AddCommand(projectsAddCmd)
	projectsAddCmd.Flags().StringP("description", "d", "", "Short description")
	projectsAddCmd.Flags().StringP("category", "c", string(cms.ProjectWebDev), "Project category")
	projectsAddCmd.Flags().String("link", "", "Live URL")
	projectsAddCmd.Flags().String("github", "", "Repository URL")
	projectsAddCmd.Flags().String("image", "", "Image URL")
	projectsCmd.AddCommand(projectsRmCmd)
	projectsCmd.AddCommand(projectsPreviewCmd)

	blogsCmd.AddCommand(blogsListCmd)
	blogsCmd.AddCommand(blogsShowCmd)
	blogsCmd.AddCommand(blogsRmCmd)

	rootCmd.AddCommand(settingsCmd)
	rootCmd.AddCommand(skillsCmd)
	rootCmd.AddCommand(projectsCmd)
	rootCmd.AddCommand(blogsCmd)
	rootCmd.AddCommand(uploadCmd)
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().Bool("encrypt", false, "Encrypt the snapshot with a passphrase")
	rootCmd.AddCommand(importCmd)
}
