// Command tokengen issues operator access tokens and computes checkout
// signatures for local testing.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/iliyamo/eventflow-booking/internal/model"
	"github.com/iliyamo/eventflow-booking/internal/payment"
	"github.com/iliyamo/eventflow-booking/internal/utils"
)

func main() {
	_ = godotenv.Load()
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "tokengen",
		Short:         "Operator tooling for the booking service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newIssueCmd(), newSignCmd())
	return root
}

func newIssueCmd() *cobra.Command {
	var (
		subject string
		role    string
		ttl     time.Duration
		secret  string
	)
	cmd := &cobra.Command{
		Use:   "issue",
		Short: "Issue a bearer token for the admin endpoints",
		Example: `  tokengen issue --subject ops@eventflow --role admin --ttl 8h
  JWT_SECRET=... tokengen issue --subject planner --role organizer`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if secret == "" {
				secret = os.Getenv("JWT_SECRET")
			}
			if secret == "" {
				return errors.New("no signing secret: pass --secret or set JWT_SECRET")
			}
			tok, err := utils.NewAccessToken(secret, subject, model.Role(role), ttl)
			if err != nil {
				return err
			}
			return printToken(cmd.OutOrStdout(), tok)
		},
	}
	cmd.Flags().StringVar(&subject, "subject", "", "operator identifier (token sub)")
	cmd.Flags().StringVar(&role, "role", string(model.RoleOrganizer), "organizer or admin")
	cmd.Flags().DurationVar(&ttl, "ttl", 12*time.Hour, "token lifetime")
	cmd.Flags().StringVar(&secret, "secret", "", "signing secret (defaults to $JWT_SECRET)")
	_ = cmd.MarkFlagRequired("subject")
	return cmd
}

func newSignCmd() *cobra.Command {
	var (
		orderID   string
		paymentID string
		secret    string
	)
	cmd := &cobra.Command{
		Use:   "sign",
		Short: "Print the checkout signature for an order and payment id",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if secret == "" {
				secret = os.Getenv("RAZORPAY_KEY_SECRET")
			}
			if secret == "" {
				return errors.New("no key secret: pass --secret or set RAZORPAY_KEY_SECRET")
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), payment.Sign(secret, orderID, paymentID))
			return err
		},
	}
	cmd.Flags().StringVar(&orderID, "order", "", "razorpay_order_id")
	cmd.Flags().StringVar(&paymentID, "payment", "", "razorpay_payment_id")
	cmd.Flags().StringVar(&secret, "secret", "", "key secret (defaults to $RAZORPAY_KEY_SECRET)")
	_ = cmd.MarkFlagRequired("order")
	_ = cmd.MarkFlagRequired("payment")
	return cmd
}

func printToken(w io.Writer, tok utils.AccessToken) error {
	_, err := fmt.Fprintf(w, "%s\n# expires %s\n", tok.Token, tok.Exp.Format(time.RFC3339))
	return err
}
