// File: internal/cli/diagnose.go
package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/iyunix/go-vendornexus/internal/domain"
	"github.com/iyunix/go-vendornexus/internal/services/ai"
	"github.com/iyunix/go-vendornexus/internal/services/chat"
)

const diagnosePrompt = "Reply with one short sentence confirming you can help find suppliers."

// NewDiagnoseCmd creates the 'diagnose' command.
func NewDiagnoseCmd() *cobra.Command {
	var skipCompletion bool

	cmd := &cobra.Command{
		Use:   "diagnose",
		Short: "Check the model endpoint",
		Long: `List the models visible to LLM_API_KEY at LLM_BASE_URL, then run one
chat completion with the sourcing system prompt.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(a *app) error {
				fmt.Fprintf(cmd.OutOrStdout(), "🚀 Testing %s at %s...\n", a.cfg.LLMModel, a.cfg.LLMBaseURL)
				gateway, err := a.gateway()
				if err != nil {
					return err
				}
				return runDiagnose(cmd.Context(), gateway, cmd.OutOrStdout(), skipCompletion)
			})
		},
	}

	cmd.Flags().BoolVar(&skipCompletion, "models-only", false, "Only list models, skip the test completion")
	return cmd
}

func runDiagnose(ctx context.Context, gateway *ai.Gateway, out io.Writer, skipCompletion bool) error {
	status := gateway.Status(ctx)
	if !status.IsHealthy {
		fmt.Fprintf(out, "❌ Endpoint unhealthy: %s\n", status.Message)
		return fmt.Errorf("model endpoint unhealthy")
	}
	fmt.Fprintf(out, "✅ Endpoint reachable, %d models visible\n", len(status.Models))
	for _, m := range status.Models {
		fmt.Fprintf(out, "   • %s\n", m)
	}
	if skipCompletion {
		return nil
	}

	start := time.Now()
	raw, err := gateway.Complete(ctx, []domain.Message{
		domain.NewMessage(domain.RoleUser, diagnosePrompt, start),
	})
	if err != nil {
		fmt.Fprintf(out, "❌ Chat completion failed (%s): %v\n", ai.ErrorTypeOf(err), err)
		return err
	}
	reply, parseErr := chat.ParseStrict(raw)
	fmt.Fprintf(out, "✅ Response in %s: %s\n", time.Since(start).Round(time.Millisecond), chat.TruncateText(reply.Prose, 200))
	if parseErr == nil {
		fmt.Fprintf(out, "   (included a vendor block with %d vendors)\n", len(reply.Vendors))
	}
	return nil
}
