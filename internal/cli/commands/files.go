package commands

import (
	"encoding/base64"
	"fmt"
	"log"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kutbudev/tododeck/internal/client"
)

// NewAttachCmd uploads a local file as an attachment on a todo. The
// bytes travel inline as a data-URL, same as the browser UI sends them.
func NewAttachCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "attach <todo-id> <path>",
		Short: "Attach a local file to a todo",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			path := args[1]
			data, err := os.ReadFile(path)
			if err != nil {
				log.Fatalf("Failed to read %s: %v", path, err)
			}

			mimetype := mime.TypeByExtension(filepath.Ext(path))
			if mimetype == "" {
				mimetype = "application/octet-stream"
			}
			// Drop parameters like "; charset=utf-8"; the envelope wants
			// the bare type/subtype.
			if i := strings.Index(mimetype, ";"); i >= 0 {
				mimetype = mimetype[:i]
			}
			dataURL := fmt.Sprintf("data:%s;base64,%s", mimetype, base64.StdEncoding.EncodeToString(data))

			file, err := client.New().UploadFile(args[0], dataURL, filepath.Base(path), mimetype)
			if err != nil {
				log.Fatalf("Failed to upload file: %v", err)
			}
			fmt.Printf("✅ Attached %s (%d bytes)\n", file.Filename, file.Size)
			fmt.Printf("   ID: %s\n", file.ID)
			fmt.Printf("   URL: %s\n", file.URL)
		},
	}
}

// NewDetachCmd deletes an attachment by its file ID.
func NewDetachCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "detach <file-id>",
		Short: "Delete an attachment",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			if err := client.New().DeleteFile(args[0]); err != nil {
				log.Fatalf("Failed to delete file: %v", err)
			}
			fmt.Println("✅ File deleted")
		},
	}
}
