package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/amirasaad/amanah/infra/initializer"
	"github.com/amirasaad/amanah/pkg/app"
	"github.com/amirasaad/amanah/pkg/config"
	"github.com/amirasaad/amanah/pkg/dto"
	"github.com/amirasaad/amanah/pkg/money"
	"github.com/amirasaad/amanah/pkg/service/auth"
	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/term"
)

const usage = `Usage: amanah-cli -u <username> <command> [flags]

Commands:
  networth                 balances summed by account kind
  zakat [flags]            calculate zakat (see: zakat -h)
  history                  stored zakat calculations
  migrate                  bring the database schema up to date`

var (
	heading = color.New(color.FgCyan, color.Bold)
	good    = color.New(color.FgGreen, color.Bold)
	warn    = color.New(color.FgYellow)
	bad     = color.New(color.FgRed, color.Bold)
)

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdin, os.Stdout); err != nil {
		bad.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, in io.Reader, out io.Writer) error {
	fs := flag.NewFlagSet("amanah-cli", flag.ContinueOnError)
	fs.SetOutput(out)
	fs.Usage = func() { fmt.Fprintln(out, usage) }
	username := fs.String("u", os.Getenv("AMANAH_USER"), "username")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return errors.New("missing command")
	}

	cfg, err := config.Load(".env")
	if err != nil {
		return fmt.Errorf("failed to load application configuration: %w", err)
	}
	command := fs.Arg(0)
	if command == "migrate" {
		cfg.DB.Migrate = true
	}
	deps, err := initializer.InitializeDependencies(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}
	a := app.New(deps, cfg)
	if command == "migrate" {
		good.Fprintln(out, "Database schema up to date")
		return nil
	}

	c := &cli{app: a, out: out, authSvc: auth.NewWithBasic(deps.Uow, deps.Logger)}
	if ctx, err = c.login(ctx, *username, in); err != nil {
		return err
	}
	return c.dispatch(ctx, command, fs.Args()[1:])
}

type cli struct {
	app     *app.App
	authSvc *auth.Service
	out     io.Writer
}

// login checks the password and returns a context carrying the user id.
func (c *cli) login(ctx context.Context, username string, in io.Reader) (context.Context, error) {
	if username == "" {
		return ctx, errors.New("username is required (-u or AMANAH_USER)")
	}
	password, err := readPassword(in, c.out)
	if err != nil {
		return ctx, err
	}
	u, err := c.authSvc.Login(ctx, username, password)
	if err != nil {
		return ctx, err
	}
	return auth.WithUserID(ctx, u.ID), nil
}

func (c *cli) dispatch(ctx context.Context, command string, args []string) error {
	userID, err := c.authSvc.CurrentUserID(ctx)
	if err != nil {
		return err
	}
	switch command {
	case "networth":
		return c.netWorth(ctx, userID)
	case "zakat":
		return c.zakat(ctx, userID, args)
	case "history":
		return c.history(ctx, userID)
	default:
		fmt.Fprintln(c.out, usage)
		return fmt.Errorf("unknown command %q", command)
	}
}

func (c *cli) netWorth(ctx context.Context, userID uuid.UUID) error {
	nw, err := c.app.ZakatService.GetNetWorth(ctx, userID)
	if err != nil {
		return err
	}
	heading.Fprintln(c.out, "Net worth")
	fmt.Fprintf(c.out, "  Cash:  %s\n", nw.TotalCash.StringFixed(2))
	fmt.Fprintf(c.out, "  Bank:  %s\n", nw.TotalBank.StringFixed(2))
	good.Fprintf(c.out, "  Total: %s\n", nw.NetWorth.StringFixed(2))
	if nw.TotalStocks.IsPositive() {
		fmt.Fprintf(c.out, "  Holdings (not in total): %s\n", nw.TotalStocks.StringFixed(2))
	}
	return nil
}

func (c *cli) zakat(ctx context.Context, userID uuid.UUID, args []string) error {
	fs := flag.NewFlagSet("zakat", flag.ContinueOnError)
	fs.SetOutput(c.out)
	cash := fs.String("cash", "", "cash on hand; defaults to the sum of account balances")
	goldWeight := fs.String("gold-weight", "", "gold held, grams")
	goldPrice := fs.String("gold-price", "", "gold price per gram")
	silverWeight := fs.String("silver-weight", "", "silver held, grams")
	silverPrice := fs.String("silver-price", "", "silver price per gram")
	investments := fs.String("investments", "", "investments value")
	debts := fs.String("debts", "", "debts due")
	basis := fs.String("basis", "", "nisab basis: gold or silver")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cmd := dto.ZakatCommand{UserID: userID, NisabBasis: *basis}
	for _, f := range []struct {
		raw *string
		dst **decimal.Decimal
	}{
		{cash, &cmd.ManualCash},
		{goldWeight, &cmd.GoldWeight},
		{goldPrice, &cmd.GoldPrice},
		{silverWeight, &cmd.SilverWeight},
		{silverPrice, &cmd.SilverPrice},
		{investments, &cmd.Investments},
		{debts, &cmd.Debts},
	} {
		if *f.raw == "" {
			continue
		}
		d, err := decimal.NewFromString(*f.raw)
		if err != nil {
			return fmt.Errorf("%w: %q", money.ErrInvalidAmount, *f.raw)
		}
		*f.dst = &d
	}

	res, err := c.app.ZakatService.Calculate(ctx, cmd)
	if err != nil {
		return err
	}
	heading.Fprintln(c.out, "Zakat")
	fmt.Fprintf(c.out, "  Cash and bank: %s\n", res.TotalCashAndBank.StringFixed(2))
	fmt.Fprintf(c.out, "  Total assets:  %s\n", res.TotalAssets.StringFixed(2))
	fmt.Fprintf(c.out, "  Net assets:    %s\n", res.NetAssets.StringFixed(2))
	fmt.Fprintf(c.out, "  Nisab (%s):  %s\n", res.NisabBasis, res.NisabValue.StringFixed(2))
	if res.IsDue {
		good.Fprintf(c.out, "  Zakat due:     %s\n", res.ZakatDue.StringFixed(2))
	} else {
		fmt.Fprintln(c.out, "  Net assets are below the nisab; no zakat is due.")
	}
	if res.Record == nil {
		warn.Fprintln(c.out, "  The calculation could not be saved to history.")
	}
	return nil
}

func (c *cli) history(ctx context.Context, userID uuid.UUID) error {
	records, err := c.app.ZakatService.GetHistory(ctx, userID)
	if err != nil {
		return err
	}
	heading.Fprintln(c.out, "Zakat history")
	if len(records) == 0 {
		fmt.Fprintln(c.out, "  No calculations yet.")
		return nil
	}
	for _, r := range records {
		status := "not due"
		if r.IsDue {
			status = "due " + r.ZakatDue.StringFixed(2)
		}
		fmt.Fprintf(c.out, "  %s  net %s  nisab %s (%s)  %s\n",
			r.Date.Format("2006-01-02"),
			r.NetAssets.StringFixed(2),
			r.NisabValue.StringFixed(2),
			r.NisabBasis,
			status,
		)
	}
	return nil
}

// readPassword prompts without echo on a terminal and reads one line otherwise.
func readPassword(in io.Reader, out io.Writer) (string, error) {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(out, "Password: ")
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(out)
		if err != nil {
			return "", fmt.Errorf("failed to read password: %w", err)
		}
		return string(b), nil
	}
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
