package commands

import (
	"fmt"
	"log"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kutbudev/tododeck/internal/client"
	"github.com/kutbudev/tododeck/internal/models"
	"github.com/kutbudev/tododeck/internal/service"
)

// NewListCmd lists todos from the API, optionally filtered by tag.
func NewListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "list",
		Short:   "List todos",
		Aliases: []string{"ls"},
		Run: func(cmd *cobra.Command, args []string) {
			tag, _ := cmd.Flags().GetString("tag")

			todos, err := client.New().ListTodos(tag)
			if err != nil {
				log.Fatalf("Failed to fetch todos: %v", err)
			}
			if len(todos) == 0 {
				fmt.Println("💡 No todos found. Use 'todoctl add \"My todo\"' to create one.")
				return
			}
			for _, todo := range todos {
				printTodoLine(todo)
			}
		},
	}
	cmd.Flags().StringP("tag", "t", "", "Only show todos carrying this tag")
	return cmd
}

// NewAddCmd creates a new todo via the API.
func NewAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "add [title]",
		Short:   "Create a new todo",
		Aliases: []string{"create"},
		Args:    cobra.MinimumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			title := strings.Join(args, " ")
			desc, _ := cmd.Flags().GetString("desc")
			tags, _ := cmd.Flags().GetStringSlice("tag")

			input := service.CreateTodoInput{Title: title, Tags: tags}
			if desc != "" {
				input.Description = &desc
			}

			todo, err := client.New().CreateTodo(input)
			if err != nil {
				log.Fatalf("Failed to create todo: %v", err)
			}
			fmt.Printf("✅ Created todo: %s\n", todo.Title)
			fmt.Printf("   ID: %s\n", todo.ID)
		},
	}
	cmd.Flags().StringP("desc", "d", "", "Optional description")
	cmd.Flags().StringSliceP("tag", "t", nil, "Tags to attach (repeatable)")
	return cmd
}

// NewShowCmd prints full details of a single todo.
func NewShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "show <id>",
		Short:   "Show a todo with its tags and attachments",
		Aliases: []string{"info"},
		Args:    cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			todo, err := client.New().GetTodo(args[0])
			if err != nil {
				log.Fatalf("Failed to fetch todo: %v", err)
			}

			printTodoLine(*todo)
			if todo.Description != nil && *todo.Description != "" {
				fmt.Printf("   %s\n", *todo.Description)
			}
			fmt.Printf("   Created: %s\n", todo.CreatedAt.Format("2006-01-02 15:04"))
			fmt.Printf("   Updated: %s\n", todo.UpdatedAt.Format("2006-01-02 15:04"))
			for _, f := range todo.Files {
				fmt.Printf("   📎 %s (%d bytes) %s [%s]\n", f.Filename, f.Size, f.URL, f.ID)
			}
		},
	}
}

// NewDoneCmd marks a todo completed.
func NewDoneCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "done <id>",
		Short: "Mark a todo as completed",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			setCompleted(args[0], true)
		},
	}
}

// NewUndoneCmd marks a todo as not completed.
func NewUndoneCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "undone <id>",
		Short: "Mark a todo as not completed",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			setCompleted(args[0], false)
		},
	}
}

// NewRmCmd deletes a todo.
func NewRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Short:   "Delete a todo and its attachments",
		Aliases: []string{"delete"},
		Args:    cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			if err := client.New().DeleteTodo(args[0]); err != nil {
				log.Fatalf("Failed to delete todo: %v", err)
			}
			fmt.Println("✅ Todo deleted")
		},
	}
}

// NewTagCmd replaces a todo's tags with the named set. Called with no
// names it clears all tags.
func NewTagCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tag <id> [names...]",
		Short: "Replace a todo's tags",
		Args:  cobra.MinimumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			tags := args[1:]
			todo, err := client.New().UpdateTodo(args[0], service.UpdateTodoInput{Tags: &tags})
			if err != nil {
				log.Fatalf("Failed to update tags: %v", err)
			}
			fmt.Printf("✅ Tags updated: %s\n", tagList(*todo))
		},
	}
}

func setCompleted(id string, completed bool) {
	todo, err := client.New().UpdateTodo(id, service.UpdateTodoInput{Completed: &completed})
	if err != nil {
		log.Fatalf("Failed to update todo: %v", err)
	}
	if todo.Completed {
		fmt.Printf("✅ Completed: %s\n", todo.Title)
	} else {
		fmt.Printf("🔄 Reopened: %s\n", todo.Title)
	}
}

func printTodoLine(todo models.Todo) {
	mark := " "
	if todo.Completed {
		mark = "x"
	}
	line := fmt.Sprintf("[%s] %s  %s", mark, todo.ID, todo.Title)
	if tags := tagList(todo); tags != "" {
		line += "  " + tags
	}
	if n := len(todo.Files); n > 0 {
		line += fmt.Sprintf("  (%d files)", n)
	}
	fmt.Println(line)
}

func tagList(todo models.Todo) string {
	names := make([]string, 0, len(todo.Tags))
	for _, tag := range todo.Tags {
		names = append(names, "#"+tag.Name)
	}
	return strings.Join(names, " ")
}
