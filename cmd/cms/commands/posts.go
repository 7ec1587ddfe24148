package commands

import (
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/PebblesProgramming/miso-headless-cms-core/pkg/cms"
)

func (a *app) newPostsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "posts",
		Aliases: []string{"post", "blog"},
		Short:   "Read blog posts",
		Long:    "List and inspect blog posts published in the CMS",
	}

	cmd.AddCommand(a.newPostsListCommand())
	cmd.AddCommand(a.newPostsGetCommand())

	return cmd
}

func (a *app) newPostsListCommand() *cobra.Command {
	var params cms.PostsParams

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List posts",
		Long:  "List blog posts, optionally filtered",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := a.newClient(cmd)
			if err != nil {
				return err
			}

			posts, err := client.Posts().List(commandContext(cmd), &params)
			if err != nil {
				return err
			}

			return a.renderOutput(cmd, posts, func(table *tablewriter.Table) {
				table.Header("Slug", "Title", "Author", "Published", "Excerpt")

				for _, post := range posts.Data {
					_ = table.Append(post.Slug, post.Title, orNA(post.Author), relativeTime(post.PublishedAt), excerpt(post.Excerpt))
				}
			})
		},
	}

	cmd.Flags().StringVar(&params.Category, "category", "", "filter by category")
	cmd.Flags().StringVar(&params.Tag, "tag", "", "filter by tag")
	cmd.Flags().StringVar(&params.Search, "search", "", "full text search")
	cmd.Flags().IntVar(&params.Page, "page", 0, "page number")
	cmd.Flags().IntVar(&params.Limit, "limit", 0, "posts per page")

	return cmd
}

func (a *app) newPostsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get SLUG",
		Short: "Get post details",
		Long:  "Display detailed information about a blog post",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.newClient(cmd)
			if err != nil {
				return err
			}

			post, err := client.Posts().Get(commandContext(cmd), args[0])
			if err != nil {
				return err
			}

			return a.renderOutput(cmd, post, func(table *tablewriter.Table) {
				table.Header("Property", "Value")
				_ = table.Append("ID", strconv.Itoa(post.ID))
				_ = table.Append("Slug", post.Slug)
				_ = table.Append("Title", post.Title)
				_ = table.Append("Author", orNA(post.Author))
				_ = table.Append("Category", orNA(post.Category))
				_ = table.Append("Tags", orNA(strings.Join(post.Tags, ", ")))
				_ = table.Append("Published", formatTime(post.PublishedAt)+" ("+relativeTime(post.PublishedAt)+")")
				_ = table.Append("Excerpt", orNA(excerpt(post.Excerpt)))
			})
		},
	}
}
