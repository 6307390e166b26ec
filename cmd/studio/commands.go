package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/odvcencio/furry-motion/chat"
	"github.com/odvcencio/furry-motion/comments"
	"github.com/odvcencio/furry-motion/pencil"
	"github.com/spf13/cobra"
)

func chatCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "chat [message]",
		Short: "Ask the studio assistant one question",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(flags, false)
			if err != nil {
				return err
			}
			defer e.close()

			conv := chat.NewConversation(e.coach(cmd.Context()))
			reply, ok := conv.Send(cmd.Context(), strings.Join(args, " "))
			if !ok {
				return fmt.Errorf("nothing to send")
			}
			out := cmd.OutOrStdout()
			for _, line := range chat.Render(reply.Text, 72) {
				fmt.Fprintln(out, line.String())
			}
			return nil
		},
	}
}

func commentsCmd(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "comments",
		Short: "Read or post project critique",
	}
	cmd.AddCommand(commentsListCmd(flags))
	cmd.AddCommand(commentsAddCmd(flags))
	return cmd
}

func commentsListCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "list [project-id]",
		Short: "Print a project's thread, newest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			board, e, err := openBoard(cmd, flags, args[0])
			if err != nil {
				return err
			}
			defer e.close()

			out := cmd.OutOrStdout()
			for _, c := range board.Comments().Get() {
				fmt.Fprintf(out, "%s  %-16s %s\n", c.Timestamp.Format("2006-01-02 15:04"), c.Author, c.Text)
			}
			return nil
		},
	}
}

func commentsAddCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "add [project-id] [author] [text]",
		Short: "Post a comment on a project",
		Args:  cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			board, e, err := openBoard(cmd, flags, args[0])
			if err != nil {
				return err
			}
			defer e.close()

			c, err := board.Add(cmd.Context(), args[1], strings.Join(args[2:], " "))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Posted %s on project %d\n", c.ID, c.ProjectID)
			return nil
		},
	}
}

func openBoard(cmd *cobra.Command, flags *globalFlags, rawID string) (*comments.Board, *env, error) {
	id, err := strconv.Atoi(rawID)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid project id %q", rawID)
	}
	e, err := setup(flags, false)
	if err != nil {
		return nil, nil, err
	}
	board, err := comments.OpenBoard(cmd.Context(), comments.BoardConfig{
		Store:     e.store,
		ProjectID: id,
		Logger:    e.logger,
	})
	if err != nil {
		e.close()
		return nil, nil, err
	}
	return board, e, nil
}

func pathCmd() *cobra.Command {
	var height float64
	cmd := &cobra.Command{
		Use:   "path",
		Short: "Print the pencil line as SVG path data",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !(height > 0) {
				return fmt.Errorf("height must be positive, got %v", height)
			}
			fmt.Fprintln(cmd.OutOrStdout(), pencil.SVG(pencil.Path(height)))
			return nil
		},
	}
	cmd.Flags().Float64Var(&height, "height", 1000, "document height in pixels")
	return cmd
}
