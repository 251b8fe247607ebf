// Command storefront is a small CLI for exercising the cart API the way the
// web storefront does: log in, mutate the cart, and print a priced summary
// of the reconciled state.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"text/tabwriter"

	"citimart/internal/config"
	"citimart/internal/engine"
	"citimart/internal/pricing"
)

func main() {
	var (
		email    string
		password string
	)
	flag.StringVar(&email, "email", "", "Account email")
	flag.StringVar(&password, "password", "", "Account password")
	flag.Usage = usage
	flag.Parse()

	if email == "" || password == "" || flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	cfg := config.FromEnv()
	logger := log.New(os.Stderr, "[storefront] ", log.LstdFlags)
	ctx := context.Background()

	sess, err := login(ctx, cfg.APIBaseURL, email, password)
	if err != nil {
		logger.Fatalf("login: %v", err)
	}

	eng := engine.New(cfg.APIBaseURL, cfg.Pricing, engine.WithTimeout(cfg.EngineTimeout))
	if _, err := eng.LoadCart(ctx, sess); err != nil {
		logger.Fatalf("load cart: %v", err)
	}

	args := flag.Args()
	if err := run(ctx, eng, sess, args); err != nil {
		logger.Fatalf("%s: %v", args[0], err)
	}

	printQuote(eng.Quote())
}

func run(ctx context.Context, eng *engine.Engine, sess engine.Session, args []string) error {
	switch cmd := args[0]; cmd {
	case "show":
		return nil
	case "add":
		productID, size, quantity, err := itemArgs(args[1:], true)
		if err != nil {
			return err
		}
		_, err = eng.AddItem(ctx, sess, productID, size, quantity)
		return err
	case "update":
		productID, size, quantity, err := itemArgs(args[1:], true)
		if err != nil {
			return err
		}
		_, err = eng.UpdateQuantity(ctx, sess, productID, size, quantity)
		return err
	case "remove":
		productID, size, _, err := itemArgs(args[1:], false)
		if err != nil {
			return err
		}
		_, err = eng.RemoveItem(ctx, sess, productID, size)
		return err
	case "clear":
		return eng.ClearCart(ctx, sess)
	case "wish":
		productID, size, _, err := itemArgs(args[1:], false)
		if err != nil {
			return err
		}
		return eng.AddToWishlist(ctx, sess, productID, size)
	case "move":
		productID, size, _, err := itemArgs(args[1:], false)
		if err != nil {
			return err
		}
		_, err = eng.MoveToCart(ctx, sess, productID, size)
		return err
	case "wishlist":
		entries, err := eng.LoadWishlist(ctx, sess)
		if err != nil {
			return err
		}
		for _, e := range entries {
			fmt.Printf("wish: %s (size %s)\n", e.ProductID, e.Size)
		}
		return nil
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func itemArgs(args []string, withQuantity bool) (productID, size string, quantity int, err error) {
	if len(args) < 2 {
		return "", "", 0, fmt.Errorf("expected <productID> <size>")
	}
	productID, size = args[0], args[1]
	quantity = 1
	if withQuantity && len(args) > 2 {
		quantity, err = strconv.Atoi(args[2])
		if err != nil {
			return "", "", 0, fmt.Errorf("bad quantity %q", args[2])
		}
	}
	return productID, size, quantity, nil
}

func login(ctx context.Context, baseURL, email, password string) (engine.Session, error) {
	payload, err := json.Marshal(map[string]string{"email": email, "password": password})
	if err != nil {
		return engine.Session{}, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, baseURL+"/auth/login", bytes.NewReader(payload))
	if err != nil {
		return engine.Session{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return engine.Session{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return engine.Session{}, fmt.Errorf("login failed with status %d", resp.StatusCode)
	}

	var body struct {
		Token    string `json:"token"`
		Customer struct {
			ID string `json:"id"`
		} `json:"customer"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return engine.Session{}, err
	}
	return engine.Session{CustomerID: body.Customer.ID, Token: body.Token}, nil
}

func printQuote(q pricing.Result) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "items\t%d\n", q.ItemCount)
	fmt.Fprintf(w, "subtotal\t%s\n", cents(q.SubtotalCents))
	if q.BulkDiscountCents > 0 {
		fmt.Fprintf(w, "bulk discount\t-%s\n", cents(q.BulkDiscountCents))
	}
	if q.DeliveryFeeCents > 0 {
		fmt.Fprintf(w, "delivery\t%s\n", cents(q.DeliveryFeeCents))
	} else {
		fmt.Fprintf(w, "delivery\tfree\n")
	}
	fmt.Fprintf(w, "total\t%s\n", cents(q.FinalTotalCents))
	w.Flush()
}

func cents(v int64) string {
	return fmt.Sprintf("%d.%02d", v/100, v%100)
}

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: storefront -email <email> -password <password> <command> [args]

Commands:
  show                              print the priced cart
  add <productID> <size> [qty]      add an item
  update <productID> <size> <qty>   change a line's quantity
  remove <productID> <size>         remove a line
  clear                             empty the cart
  wish <productID> <size>           add to wishlist
  move <productID> <size>           move a wish into the cart
  wishlist                          list wishlist entries
`)
	flag.PrintDefaults()
}
