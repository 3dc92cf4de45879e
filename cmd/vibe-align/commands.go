package main

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/inodb/vibe-align/internal/msa"
	"github.com/inodb/vibe-align/internal/output"
	"github.com/inodb/vibe-align/internal/seq"
	"github.com/inodb/vibe-align/internal/session"
)

// parseInt parses an integer argument.
func parseInt(name, s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, usageError{fmt.Errorf("%s: %q is not a number", name, s)}
	}
	return n, nil
}

// parseRange parses "B..E" or a single position "N". The empty string
// gives the zero range.
func parseRange(name, s string) (seq.Range, error) {
	if s == "" {
		return seq.Range{}, nil
	}
	b, e, ok := strings.Cut(s, "..")
	if !ok {
		e = b
	}
	begin, err := parseInt(name, b)
	if err != nil {
		return seq.Range{}, err
	}
	end, err := parseInt(name, e)
	if err != nil {
		return seq.Range{}, err
	}
	return seq.NewRange(begin, end), nil
}

func parseRect(columns, rows string) (msa.Rect, error) {
	c, err := parseRange("columns", columns)
	if err != nil {
		return msa.Rect{}, err
	}
	r, err := parseRange("rows", rows)
	if err != nil {
		return msa.Rect{}, err
	}
	if c.IsEmpty() || r.IsEmpty() {
		return msa.Rect{}, usageError{fmt.Errorf("--columns and --rows are required")}
	}
	return msa.NewRect(c, r), nil
}

// parseRow parses SEQUENCE[,PARENT[,START]].
func parseRow(s string) (session.RowInput, error) {
	parts := strings.Split(s, ",")
	if len(parts) > 3 || parts[0] == "" {
		return session.RowInput{}, usageError{fmt.Errorf("row %q: want SEQUENCE[,PARENT[,START]]", s)}
	}
	in := session.RowInput{Sequence: parts[0]}
	if len(parts) > 1 {
		in.Parent = parts[1]
	}
	if len(parts) > 2 {
		start, err := parseInt("start", parts[2])
		if err != nil {
			return session.RowInput{}, err
		}
		in.Start = start
	}
	return in, nil
}

func parseSide(s string) (session.Side, error) {
	side, err := session.ParseSide(s)
	if err != nil {
		return side, usageError{err}
	}
	return side, nil
}

// withEnv opens the store for the duration of f.
func withEnv(cmd *cobra.Command, f func(ctx context.Context, e *env) error) error {
	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.Close()
	return f(cmd.Context(), e)
}

func writeAlignment(w io.Writer, m *msa.Msa) error {
	aw := output.NewAlignmentWriter(w)
	if err := aw.WriteHeader(); err != nil {
		return err
	}
	if err := aw.Write(m); err != nil {
		return err
	}
	return aw.Flush()
}

// writeResult prints the alignment followed by whatever the edit reported.
func writeResult(w io.Writer, m *msa.Msa, res session.Result) error {
	if err := writeAlignment(w, m); err != nil {
		return err
	}
	if len(res.Changes) > 0 {
		fmt.Fprintln(w)
		cw := output.NewChangeWriter(w)
		if err := cw.WriteHeader(); err != nil {
			return err
		}
		if err := cw.Write(res.Changes); err != nil {
			return err
		}
		if err := cw.Flush(); err != nil {
			return err
		}
	}
	if len(res.Removed) > 0 {
		fmt.Fprintln(w)
		rw := output.NewRangeWriter(w)
		if err := rw.WriteHeader(); err != nil {
			return err
		}
		if err := rw.Write(res.Removed); err != nil {
			return err
		}
		if err := rw.Flush(); err != nil {
			return err
		}
	}
	if res.Delta != 0 {
		fmt.Fprintf(w, "\nmoved %d\n", res.Delta)
	}
	return nil
}

// runEdit applies edit to the named alignment and prints the result.
func runEdit(cmd *cobra.Command, name string, edit session.Edit) error {
	return withEnv(cmd, func(ctx context.Context, e *env) error {
		m, res, err := e.sessions.Apply(ctx, name, edit)
		if err != nil {
			return err
		}
		return writeResult(cmd.OutOrStdout(), m, res)
	})
}

func newNewCmd() *cobra.Command {
	var grammar string
	cmd := &cobra.Command{
		Use:   "new <name> [row...]",
		Short: "Create an alignment",
		Long: `Create an alignment from gapped rows. Each row is SEQUENCE, optionally
followed by its parent sequence and the parent position of its first
residue: SEQUENCE[,PARENT[,START]]. Without START the row is located by
searching the parent. Rows that begin with a gap go after "--".`,
		Example: `  vibe-align new globins --grammar amino -- --C-DEF--,ABCDEFGH -XY-ZZZ-W,QXYZZZW,2`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := seq.ParseGrammar(grammar)
			if err != nil {
				return usageError{err}
			}
			var rows []session.RowInput
			for _, a := range args[1:] {
				in, err := parseRow(a)
				if err != nil {
					return err
				}
				rows = append(rows, in)
			}
			return withEnv(cmd, func(ctx context.Context, e *env) error {
				m, err := e.sessions.Create(ctx, args[0], g, rows)
				if err != nil {
					return err
				}
				return writeAlignment(cmd.OutOrStdout(), m)
			})
		},
	}
	cmd.Flags().StringVarP(&grammar, "grammar", "g", "amino", "sequence grammar: dna, rna, amino")
	return cmd
}

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved alignments",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(cmd, func(ctx context.Context, e *env) error {
				list, err := e.sessions.List(ctx)
				if err != nil {
					return err
				}
				sw := output.NewSummaryWriter(cmd.OutOrStdout())
				if err := sw.WriteHeader(); err != nil {
					return err
				}
				for _, s := range list {
					if err := sw.Write(s); err != nil {
						return err
					}
				}
				return sw.Flush()
			})
		},
	}
}

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <name>",
		Short: "Print the rows of an alignment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(cmd, func(ctx context.Context, e *env) error {
				m, err := e.sessions.Load(ctx, args[0])
				if err != nil {
					return err
				}
				return writeAlignment(cmd.OutOrStdout(), m)
			})
		},
	}
}

func newDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete an alignment and its history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(cmd, func(ctx context.Context, e *env) error {
				return e.sessions.Delete(ctx, args[0])
			})
		},
	}
}

func newRowsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rows",
		Short: "Move or remove rows",
	}
	cmd.AddCommand(&cobra.Command{
		Use:     "move <name> <rows> <to>",
		Short:   "Move a block of rows so its first row lands at index <to>",
		Example: `  vibe-align rows move globins 3..4 1`,
		Args:    cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, err := parseRange("rows", args[1])
			if err != nil {
				return err
			}
			to, err := parseInt("to", args[2])
			if err != nil {
				return err
			}
			return runEdit(cmd, args[0], session.MoveRows(rows, to))
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "remove <name> <rows>",
		Short: "Remove a block of rows",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, err := parseRange("rows", args[1])
			if err != nil {
				return err
			}
			return runEdit(cmd, args[0], session.RemoveRows(rows))
		},
	})
	return cmd
}

func newGapsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gaps",
		Short: "Insert or remove gap columns",
	}

	var count int
	var gap string
	insert := &cobra.Command{
		Use:   "insert <name> <column>",
		Short: "Insert gap columns before <column>",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			col, err := parseInt("column", args[1])
			if err != nil {
				return err
			}
			return withEnv(cmd, func(ctx context.Context, e *env) error {
				g := e.sessions.Gap()
				if gap != "" {
					if len(gap) != 1 {
						return usageError{fmt.Errorf("gap must be a single character, got %q", gap)}
					}
					g = gap[0]
				}
				m, res, err := e.sessions.Apply(ctx, args[0], session.InsertGapColumns(col, count, g))
				if err != nil {
					return err
				}
				return writeResult(cmd.OutOrStdout(), m, res)
			})
		},
	}
	insert.Flags().IntVarP(&count, "count", "n", 1, "number of columns")
	insert.Flags().StringVar(&gap, "gap", "", "gap character (default from config)")

	var columns string
	remove := &cobra.Command{
		Use:   "remove <name>",
		Short: "Remove all-gap columns",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := parseRange("columns", columns)
			if err != nil {
				return err
			}
			return runEdit(cmd, args[0], session.RemoveGapColumns(r))
		},
	}
	remove.Flags().StringVar(&columns, "columns", "", "restrict to columns B..E")

	cmd.AddCommand(insert, remove)
	return cmd
}

func newSlideCmd() *cobra.Command {
	var columns, rows string
	cmd := &cobra.Command{
		Use:   "slide <name> <delta>",
		Short: "Slide a block of residues through neighbouring gaps",
		Long: `Slide the block given by --columns and --rows by up to <delta> columns
(negative for left). Every row of the block moves by the same amount,
limited by the row with the least room.`,
		Example: `  vibe-align slide globins --columns 10..14 --rows 2..5 -- -3`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			delta, err := parseInt("delta", args[1])
			if err != nil {
				return err
			}
			rect, err := parseRect(columns, rows)
			if err != nil {
				return err
			}
			return runEdit(cmd, args[0], session.SlideRect(rect, delta))
		},
	}
	cmd.Flags().StringVar(&columns, "columns", "", "columns B..E")
	cmd.Flags().StringVar(&rows, "rows", "", "rows B..E")
	return cmd
}

func newSidedCmd(use, short string, op func(session.Side, int, seq.Range) session.Edit) *cobra.Command {
	var rows string
	cmd := &cobra.Command{
		Use:   use + " <name> left|right <column>",
		Short: short,
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			side, err := parseSide(args[1])
			if err != nil {
				return err
			}
			col, err := parseInt("column", args[2])
			if err != nil {
				return err
			}
			r, err := parseRange("rows", rows)
			if err != nil {
				return err
			}
			return runEdit(cmd, args[0], op(side, col, r))
		},
	}
	cmd.Flags().StringVar(&rows, "rows", "", "rows B..E (default all)")
	return cmd
}

func newCollapseCmd() *cobra.Command {
	var columns, rows string
	cmd := &cobra.Command{
		Use:   "collapse <name> left|right",
		Short: "Pack the residues of a block against one side",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			side, err := parseSide(args[1])
			if err != nil {
				return err
			}
			rect, err := parseRect(columns, rows)
			if err != nil {
				return err
			}
			return runEdit(cmd, args[0], session.Collapse(side, rect))
		},
	}
	cmd.Flags().StringVar(&columns, "columns", "", "columns B..E")
	cmd.Flags().StringVar(&rows, "rows", "", "rows B..E")
	return cmd
}

func newAnchorCmd() *cobra.Command {
	var start, stop int
	cmd := &cobra.Command{
		Use:   "anchor <name> <row>",
		Short: "Change the parent positions a row covers",
		Long: `Move the start and/or stop of a row within its parent sequence. Residues
are added from or returned to the parent; gap columns are added at the
edges of the alignment when the row needs more room.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			row, err := parseInt("row", args[1])
			if err != nil {
				return err
			}
			if start == 0 && stop == 0 {
				return usageError{fmt.Errorf("--start or --stop is required")}
			}
			return runEdit(cmd, args[0], session.Anchor(row, start, stop))
		},
	}
	cmd.Flags().IntVar(&start, "start", 0, "new parent start")
	cmd.Flags().IntVar(&stop, "stop", 0, "new parent stop")
	return cmd
}

func newUndoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "undo <name>",
		Short: "Revert the last journaled edit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(cmd, func(ctx context.Context, e *env) error {
				m, res, err := e.sessions.Undo(ctx, args[0])
				if err != nil {
					return err
				}
				return writeResult(cmd.OutOrStdout(), m, res)
			})
		},
	}
}

func newRedoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "redo <name>",
		Short: "Reapply the last undone edit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(cmd, func(ctx context.Context, e *env) error {
				m, res, err := e.sessions.Redo(ctx, args[0])
				if err != nil {
					return err
				}
				return writeResult(cmd.OutOrStdout(), m, res)
			})
		},
	}
}

func newHistoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "history <name>",
		Short: "Show how many edits can be undone and redone",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(cmd, func(ctx context.Context, e *env) error {
				undo, redo, err := e.sessions.History(ctx, args[0])
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "undo\t%d\nredo\t%d\n", undo, redo)
				return nil
			})
		},
	}
}
