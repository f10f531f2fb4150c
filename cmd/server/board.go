package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/phrazzld/board-api/internal/domain"
	"github.com/phrazzld/board-api/internal/service"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// boardColumn is a column together with its tasks in display order.
type boardColumn struct {
	ID    string      `json:"id" yaml:"id"`
	Name  string      `json:"name" yaml:"name"`
	Tasks []boardTask `json:"tasks" yaml:"tasks"`
}

type boardTask struct {
	ID          string    `json:"id" yaml:"id"`
	Description string    `json:"description" yaml:"description"`
	Owner       string    `json:"owner" yaml:"owner"`
	Order       int       `json:"order" yaml:"order"`
	Status      string    `json:"status" yaml:"status"`
}

func newBoardCmd(load configLoader) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "board",
		Short: "Print every column and its tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := load(os.Stderr)
			if err != nil {
				return err
			}

			db, err := setupAppDatabase(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}
			defer db.Close()

			app, err := newApplication(cmd.Context(), cfg, logger, db)
			if err != nil {
				return err
			}
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = app.jobRunner.Stop(ctx)
			}()

			board, err := loadBoard(cmd.Context(), app.columnService, app.taskService)
			if err != nil {
				return err
			}
			return renderBoard(cmd.OutOrStdout(), board, format)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "table", "output format: table, json or yaml")
	return cmd
}

// loadBoard reads all columns and their tasks.
func loadBoard(ctx context.Context, columns service.ColumnService, tasks service.TaskService) ([]boardColumn, error) {
	cols, err := columns.ListColumns(ctx)
	if err != nil {
		return nil, err
	}

	board := make([]boardColumn, 0, len(cols))
	for _, c := range cols {
		colTasks, err := tasks.ListColumnTasks(ctx, c.ID)
		if err != nil {
			return nil, err
		}
		board = append(board, boardColumn{ID: c.ID.String(), Name: c.Name, Tasks: toBoardTasks(colTasks)})
	}
	return board, nil
}

func toBoardTasks(tasks []*domain.Task) []boardTask {
	out := make([]boardTask, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, boardTask{
			ID:          t.ID.String(),
			Description: t.Description,
			Owner:       t.Owner,
			Order:       t.Order,
			Status:      string(t.Status),
		})
	}
	return out
}

func renderBoard(w io.Writer, board []boardColumn, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(board)
	case "yaml":
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		return enc.Encode(board)
	case "table", "":
		tw := table.NewWriter()
		tw.SetOutputMirror(w)
		tw.AppendHeader(table.Row{"Column", "Order", "Task", "Owner", "Status"})
		for _, col := range board {
			if len(col.Tasks) == 0 {
				tw.AppendRow(table.Row{col.Name, "", "", "", ""})
				continue
			}
			for _, t := range col.Tasks {
				tw.AppendRow(table.Row{col.Name, t.Order, t.Description, t.Owner, t.Status})
			}
			tw.AppendSeparator()
		}
		tw.Render()
		return nil
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}
