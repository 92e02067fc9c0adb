// Command verifier drives the payment verification workflow from the
// terminal: list the student/course/installment tree, verify a batch of
// submitted payments, or reject one with a reason.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/edusys/school-payments/internal/client"
	"github.com/edusys/school-payments/internal/verify"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{})

	server := flag.String("server", envOr("PAYMENTS_SERVER", "http://localhost:8080"), "payments API base URL")
	token := flag.String("token", os.Getenv("PAYMENTS_TOKEN"), "bearer token")
	flag.Parse()

	if *token == "" {
		logger.Fatal("A bearer token is required (-token or PAYMENTS_TOKEN)")
	}
	if flag.NArg() < 1 {
		usage()
	}

	api := client.NewClient(*server, *token, logger)
	ctx := context.Background()

	var err error
	switch flag.Arg(0) {
	case "list":
		err = runList(ctx, api, flag.Args()[1:])
	case "verify":
		err = runVerify(ctx, api, logger, flag.Args()[1:])
	case "reject":
		err = runReject(ctx, api, logger, flag.Args()[1:])
	default:
		usage()
	}
	if err != nil {
		logger.Fatalf("%v", err)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: verifier [-server URL] [-token TOKEN] <command>

commands:
  list   [-status S]                      print the aggregated payment tree
  verify -student C -course ID -from ID [-all]   verify a batch of payments
  reject -id ID -reason TEXT              reject one submitted payment`)
	os.Exit(2)
}

func runList(ctx context.Context, api *client.Client, args []string) error {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	status := fs.String("status", "", "filter by status")
	fs.Parse(args)

	rows, err := api.ListPayments(ctx, *status)
	if err != nil {
		return err
	}

	aggs := verify.Aggregate(rows)
	selections := verify.InitialSelection(aggs)
	if len(aggs) == 0 {
		fmt.Println("no payments found")
		return nil
	}
	for _, agg := range aggs {
		fmt.Printf("%s (%s)\n", agg.StudentName, agg.StudentID)
		for _, course := range agg.Courses {
			fmt.Printf("  %s %s\n", course.CourseCode, course.CourseName)
			for _, inst := range course.Installments {
				marker := " "
				if sel := selections[agg.StudentID]; sel.CourseID == course.CourseID && sel.InstallmentID == inst.ID {
					marker = ">"
				}
				fmt.Printf("  %s #%d  %8.2f  due %s  [%s] (id %d)\n",
					marker, inst.Number, inst.Amount, inst.DueDate.Format("2006-01-02"), inst.Status, inst.ID)
			}
		}
	}
	return nil
}

func runVerify(ctx context.Context, api *client.Client, logger *logrus.Logger, args []string) error {
	fs := flag.NewFlagSet("verify", flag.ExitOnError)
	student := fs.String("student", "", "student cedula")
	course := fs.Int64("course", 0, "course id")
	from := fs.Int64("from", 0, "starting installment id")
	all := fs.Bool("all", false, "include every eligible installment after the starting one")
	fs.Parse(args)

	if *student == "" || *course == 0 || *from == 0 {
		return fmt.Errorf("verify requires -student, -course and -from")
	}

	// The acting user must resolve before anything is sent; without it the
	// whole batch is off.
	me, err := api.Me(ctx)
	if err != nil {
		return fmt.Errorf("could not resolve acting user: %w", err)
	}

	rows, err := api.ListPayments(ctx, "")
	if err != nil {
		return err
	}
	aggs := verify.Aggregate(rows)

	candidates := verify.Candidates(aggs, *student, *course, *from)
	plan, err := verify.NewBatchPlan(candidates, *from)
	if err != nil {
		return err
	}
	if *all {
		for _, inst := range candidates {
			if inst.ID != *from {
				plan.Toggle(inst.ID)
			}
		}
	}

	summary := plan.Summary()
	fmt.Printf("verifying %d installment(s), total %.2f\n", summary.Count, summary.TotalAmount)

	executor := verify.NewExecutor(api, logger)
	result := executor.VerifyBatch(ctx, plan.ChosenIDs(), me.ID)
	fmt.Printf("verified %d, failed %d\n", len(result.Succeeded), len(result.Failed))
	for _, id := range result.Failed {
		fmt.Printf("  failed: installment %d\n", id)
	}

	refresh(ctx, api, logger)
	if len(result.Failed) > 0 {
		return fmt.Errorf("%d installment(s) could not be verified", len(result.Failed))
	}
	return nil
}

func runReject(ctx context.Context, api *client.Client, logger *logrus.Logger, args []string) error {
	fs := flag.NewFlagSet("reject", flag.ExitOnError)
	id := fs.Int64("id", 0, "installment id")
	reason := fs.String("reason", "", "rejection reason")
	fs.Parse(args)

	if *id == 0 {
		return fmt.Errorf("reject requires -id")
	}

	me, err := api.Me(ctx)
	if err != nil {
		return fmt.Errorf("could not resolve acting user: %w", err)
	}

	executor := verify.NewExecutor(api, logger)
	if err := executor.Reject(ctx, *id, *reason, me.ID); err != nil {
		return err
	}
	fmt.Printf("installment %d rejected\n", *id)

	refresh(ctx, api, logger)
	return nil
}

// refresh re-fetches the full list after a mutation. The mutation already
// succeeded; a failed refresh only means the next listing may be stale, so
// it is logged and not returned.
func refresh(ctx context.Context, api *client.Client, logger *logrus.Logger) {
	if _, err := api.ListPayments(ctx, ""); err != nil {
		logger.Warnf("Refresh after mutation failed, listing may be stale: %v", err)
	}
}

func envOr(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}
