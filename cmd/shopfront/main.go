// Command shopfront is a terminal storefront client. It drives the
// same session, cart, and gateway stack a graphical rendering layer
// would, which makes it useful for poking at a backend during
// development.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/shopfront/shopfront-go/internal/api"
	"github.com/shopfront/shopfront-go/internal/bootstrap"
	"github.com/shopfront/shopfront-go/internal/domain/model"
	"github.com/shopfront/shopfront-go/internal/observability/notify"
	"github.com/shopfront/shopfront-go/internal/ports"
)

type commandFn func(ctx *commandContext, args []string) error

type command struct {
	name        string
	description string
	run         commandFn
}

type commandContext struct {
	Ctx    context.Context
	Logger *slog.Logger
	App    *bootstrap.App
}

const commandTimeout = 30 * time.Second

func main() {
	logger := bootstrap.InitLogger()

	if len(os.Args) < 2 {
		if err := printUsage(); err != nil {
			logger.Error("print usage failed", "error", err)
		}
		os.Exit(2) //nolint:forbidigo // CLI must exit with failure status when no command is provided
	}

	cmdName := os.Args[1]
	cmd, ok := commands()[cmdName]
	if !ok {
		if err := writef(os.Stderr, "unknown command %q\n\n", cmdName); err != nil {
			logger.Error("print unknown command message failed", "error", err)
		}
		if err := printUsage(); err != nil {
			logger.Error("print usage failed", "error", err)
		}
		os.Exit(2) //nolint:forbidigo // CLI must exit with failure status when command is unknown
	}

	ctx := context.Background()
	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		logger.ErrorContext(ctx, "load config", "error", err)
		os.Exit(1) //nolint:forbidigo // CLI must signal configuration load failure to shell scripts
	}

	app, err := bootstrap.New(ctx, cfg, bootstrap.Options{
		Navigator: ports.NavigatorFunc(func(route string) {
			_ = writef(os.Stderr, "-> redirected to %s\n", route)
		}),
		Notifier: notify.SinkFunc(func(n notify.Notification) {
			_ = writef(os.Stderr, "!! %s\n", n.Message)
		}),
		Logger: logger,
	})
	if err != nil {
		logger.ErrorContext(ctx, "assemble client", "error", err)
		os.Exit(1) //nolint:forbidigo // CLI must signal startup failure to callers
	}
	defer func() {
		if cerr := app.Close(); cerr != nil {
			logger.ErrorContext(ctx, "close client", "error", cerr)
		}
	}()

	app.Session.InitAuth(ctx)

	cmdCtx := &commandContext{Ctx: ctx, Logger: logger, App: app}
	if runErr := cmd.run(cmdCtx, os.Args[2:]); runErr != nil {
		logger.ErrorContext(ctx, "command failed", "command", cmdName, "error", runErr)
		os.Exit(1) //nolint:forbidigo // CLI must propagate command execution failure to callers
	}
}

func commands() map[string]command {
	return map[string]command{
		"login": {
			name:        "login",
			description: "Log in and persist the session credential",
			run:         runLogin,
		},
		"logout": {
			name:        "logout",
			description: "Discard the session credential",
			run:         runLogout,
		},
		"register": {
			name:        "register",
			description: "Create a new account",
			run:         runRegister,
		},
		"whoami": {
			name:        "whoami",
			description: "Show the current session state and profile",
			run:         runWhoami,
		},
		"catalog": {
			name:        "catalog",
			description: "List products and categories",
			run:         runCatalog,
		},
		"orders": {
			name:        "orders",
			description: "List your orders",
			run:         runOrders,
		},
		"buy": {
			name:        "buy",
			description: "Add a product to the cart and check out",
			run:         runBuy,
		},
		"route": {
			name:        "route",
			description: "Evaluate the access decision for a path",
			run:         runRoute,
		},
	}
}

func printUsage() error {
	if err := writef(os.Stdout, "Usage: shopfront <command> [flags]\n\n"); err != nil {
		return err
	}
	if err := writef(os.Stdout, "Available commands:\n"); err != nil {
		return err
	}
	for _, c := range commands() {
		if err := writef(os.Stdout, "  %-12s %s\n", c.name, c.description); err != nil {
			return err
		}
	}
	return nil
}

func runLogin(cmdCtx *commandContext, args []string) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	username := fs.String("username", "", "account username")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *username == "" {
		return fmt.Errorf("login: -username is required")
	}

	password, err := promptSecret("Password: ")
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmdCtx.Ctx, commandTimeout)
	defer cancel()

	if err := cmdCtx.App.Session.Login(ctx, *username, password); err != nil {
		return fmt.Errorf("login: %w", err)
	}

	snap := cmdCtx.App.Session.Snapshot()
	if snap.Profile != nil {
		return writef(os.Stdout, "logged in as %s\n", snap.Profile.Username)
	}
	return writeln(os.Stdout, "logged in (profile still loading)")
}

func runLogout(cmdCtx *commandContext, _ []string) error {
	ctx, cancel := context.WithTimeout(cmdCtx.Ctx, commandTimeout)
	defer cancel()

	cmdCtx.App.Session.Logout(ctx)
	return writeln(os.Stdout, "logged out")
}

func runRegister(cmdCtx *commandContext, args []string) error {
	fs := flag.NewFlagSet("register", flag.ContinueOnError)
	username := fs.String("username", "", "account username")
	email := fs.String("email", "", "account email")
	fullName := fs.String("full-name", "", "display name (optional)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	password, err := promptSecret("Password: ")
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmdCtx.Ctx, commandTimeout)
	defer cancel()

	profile, err := cmdCtx.App.Session.Register(ctx, model.RegisterRequest{
		Username: *username,
		Email:    *email,
		Password: password,
		FullName: *fullName,
	})
	if err != nil {
		return fmt.Errorf("register: %w", err)
	}
	return writef(os.Stdout, "registered %s (id %d); run `shopfront login` to sign in\n",
		profile.Username, profile.ID)
}

func runWhoami(cmdCtx *commandContext, _ []string) error {
	snap := cmdCtx.App.Session.Snapshot()
	if err := writef(os.Stdout, "state: %s\n", snap.State); err != nil {
		return err
	}
	if snap.Profile == nil {
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "username\t%s\n", snap.Profile.Username)
	fmt.Fprintf(w, "email\t%s\n", snap.Profile.Email)
	fmt.Fprintf(w, "balance\t%.2f\n", snap.Profile.Balance)
	fmt.Fprintf(w, "admin\t%v\n", snap.Profile.IsSuperuser)
	return w.Flush()
}

// runCatalog fetches the product listing and the category list
// concurrently, the way a storefront landing page would.
func runCatalog(cmdCtx *commandContext, args []string) error {
	fs := flag.NewFlagSet("catalog", flag.ContinueOnError)
	limit := fs.Int("limit", 20, "maximum products to list")
	categoryID := fs.Int64("category", 0, "filter by category id")
	search := fs.String("search", "", "filter by name")
	if err := fs.Parse(args); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmdCtx.Ctx, commandTimeout)
	defer cancel()

	var (
		products   *model.ProductList
		categories []model.Category
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		products, err = cmdCtx.App.Products.List(gctx, api.ProductListParams{
			Limit:      *limit,
			CategoryID: *categoryID,
			Search:     *search,
		})
		return err
	})
	g.Go(func() error {
		var err error
		categories, err = cmdCtx.App.Products.Categories(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return fmt.Errorf("catalog: %w", err)
	}

	names := make(map[int64]string, len(categories))
	for _, c := range categories {
		names[c.ID] = c.Name
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tPRICE\tSTOCK\tCATEGORY")
	for _, p := range products.Items {
		category := ""
		if p.CategoryID != nil {
			category = names[*p.CategoryID]
		}
		fmt.Fprintf(w, "%d\t%s\t%.2f\t%d\t%s\n", p.ID, p.Name, p.Price, p.Stock, category)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	return writef(os.Stdout, "\n%d of %d products\n", len(products.Items), products.Total)
}

func runOrders(cmdCtx *commandContext, args []string) error {
	fs := flag.NewFlagSet("orders", flag.ContinueOnError)
	limit := fs.Int("limit", 20, "maximum orders to list")
	status := fs.String("status", "", "filter by status")
	if err := fs.Parse(args); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmdCtx.Ctx, commandTimeout)
	defer cancel()

	list, err := cmdCtx.App.Orders.List(ctx, api.OrderListParams{Limit: *limit, Status: *status})
	if err != nil {
		return fmt.Errorf("orders: %w", err)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNUMBER\tPRODUCT\tQTY\tTOTAL\tSTATUS")
	for _, o := range list.Items {
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%.2f\t%s\n",
			o.ID, o.OrderNumber, o.ProductName, o.Quantity, o.TotalAmount, o.Status)
	}
	return w.Flush()
}

// runBuy exercises the full purchase path: fetch the product, stage it
// in the cart, submit the cart as an order, and clear the cart on
// success.
func runBuy(cmdCtx *commandContext, args []string) error {
	fs := flag.NewFlagSet("buy", flag.ContinueOnError)
	productID := fs.Int64("product", 0, "product id to buy")
	quantity := fs.Int("quantity", 1, "quantity")
	payment := fs.String("payment", "balance", "payment method")
	note := fs.String("note", "", "note for the seller")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *productID <= 0 {
		return fmt.Errorf("buy: -product is required")
	}

	ctx, cancel := context.WithTimeout(cmdCtx.Ctx, commandTimeout)
	defer cancel()

	product, err := cmdCtx.App.Products.Get(ctx, *productID)
	if err != nil {
		return fmt.Errorf("buy: %w", err)
	}

	cart := cmdCtx.App.Cart
	cart.AddItem(product.ID, *quantity, product.Price, product.Name, product.ImageURL)

	summary, err := cmdCtx.App.Orders.CreateFromCart(ctx, model.CartOrderCreate{
		Items:         cart.Payload(),
		PaymentMethod: *payment,
		UserNote:      *note,
	})
	if err != nil {
		return fmt.Errorf("buy: %w", err)
	}
	cart.Clear()

	return writef(os.Stdout, "ordered %d item(s), total %.2f\n", len(summary.Items), summary.TotalAmount)
}

func runRoute(cmdCtx *commandContext, args []string) error {
	fs := flag.NewFlagSet("route", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("route: exactly one path argument is required")
	}

	path := fs.Arg(0)
	decision := cmdCtx.App.Guard.CheckPath(cmdCtx.App.Routes, path)
	if decision.Allowed {
		return writef(os.Stdout, "%s: allowed\n", path)
	}
	return writef(os.Stdout, "%s: redirect to %s\n", path, decision.RedirectTo)
}

// promptSecret reads a line from stdin. Passwords arrive this way
// rather than as flags so they stay out of shell history.
func promptSecret(prompt string) (string, error) {
	if err := writef(os.Stderr, "%s", prompt); err != nil {
		return "", err
	}
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read secret: %w", err)
	}
	secret := strings.TrimRight(line, "\r\n")
	if secret == "" {
		return "", fmt.Errorf("empty secret")
	}
	return secret, nil
}

func writef(w io.Writer, format string, args ...any) error {
	if _, err := fmt.Fprintf(w, format, args...); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

func writeln(w io.Writer, line string) error {
	if _, err := fmt.Fprintln(w, line); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}
