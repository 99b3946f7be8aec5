package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	bookingservice "venue-market/internal/booking/service"
	"venue-market/internal/catalog"
	spaceservice "venue-market/internal/spaces/service"
	"venue-market/internal/wizard"

	"github.com/spf13/cobra"
)

// ============================================================
// Spacectl Commands
// ============================================================

func newRootCmd() *cobra.Command {
	var flowName string

	root := &cobra.Command{
		Use:           "spacectl",
		Short:         "Inspect venue wizard drafts offline",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&flowName, "flow", "f", spaceservice.FlowName, "wizard flow (add-space or booking)")

	root.AddCommand(
		&cobra.Command{
			Use:   "payload <draft.json>",
			Short: "Print the venue create payload built from an add-space draft",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				doc, err := readDraft(args[0])
				if err != nil {
					return err
				}
				return runPayload(cmd.OutOrStdout(), flowName, doc)
			},
		},
		&cobra.Command{
			Use:   "score <draft.json>",
			Short: "Print the completion checklist of a draft",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				doc, err := readDraft(args[0])
				if err != nil {
					return err
				}
				flow, err := lookupFlow(flowName)
				if err != nil {
					return err
				}
				return runScore(cmd.OutOrStdout(), flow, doc)
			},
		},
		&cobra.Command{
			Use:   "steps",
			Short: "List the steps of a flow",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				flow, err := lookupFlow(flowName)
				if err != nil {
					return err
				}
				return runSteps(cmd.OutOrStdout(), flow)
			},
		},
	)
	return root
}

func lookupFlow(name string) (wizard.Flow, error) {
	switch name {
	case spaceservice.FlowName:
		return spaceservice.Flow(), nil
	case bookingservice.FlowName:
		rules := bookingservice.Rules{Availability: catalog.Sample(time.Now())}
		return rules.Flow(), nil
	default:
		return wizard.Flow{}, fmt.Errorf("unknown flow %q", name)
	}
}

// readDraft loads a draft document; "-" reads stdin.
func readDraft(path string) (wizard.Document, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read draft: %w", err)
	}
	doc, err := wizard.DecodeDocument(data)
	if err != nil {
		return nil, fmt.Errorf("parse draft %s: %w", path, err)
	}
	return doc, nil
}

func runPayload(out io.Writer, flowName string, doc wizard.Document) error {
	var payload any
	switch flowName {
	case spaceservice.FlowName:
		f, err := spaceservice.DecodeForm(doc)
		if err != nil {
			return fmt.Errorf("decode draft: %w", err)
		}
		payload = spaceservice.Transform(f)
	case bookingservice.FlowName:
		f, err := bookingservice.DecodeForm(doc)
		if err != nil {
			return fmt.Errorf("decode draft: %w", err)
		}
		payload = bookingservice.Transform(f)
	default:
		return fmt.Errorf("unknown flow %q", flowName)
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}

func runScore(out io.Writer, flow wizard.Flow, doc wizard.Document) error {
	report := wizard.Score(doc.WithDefaults(flow.Defaults()), flow.Checklist)

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	for _, item := range report.Items {
		mark := "[ ]"
		if item.Complete {
			mark = "[x]"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", mark, item.Label, item.Key)
	}
	fmt.Fprintf(w, "\t%d/%d complete\t%d%%\n", report.Completed, report.Total, report.Percent)
	return w.Flush()
}

func runSteps(out io.Writer, flow wizard.Flow) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	for _, s := range wizard.Describe(flow.Steps) {
		fmt.Fprintf(w, "%d\t%s\t%v\n", s.Index, s.Title, s.Fields)
	}
	return w.Flush()
}
