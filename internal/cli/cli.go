// Package cli implements the interactive operator menu. It is a thin
// collaborator over the store: it collects input, dispatches to the domain
// operations, and renders their results or error messages.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/go-faster/errors"
	"go.uber.org/zap"

	"github.com/xenking/storefront/internal/domain/product"
	"github.com/xenking/storefront/internal/domain/store"
)

// Config holds the menu's presentation settings.
type Config struct {
	// Prompt precedes every operator input.
	Prompt string
	// DoneWord finishes order entry, e.g. "done".
	DoneWord string
}

// Menu drives the interactive request/response loop for one operator session.
type Menu struct {
	cfg   Config
	store *store.Store
	in    *bufio.Scanner
	out   io.Writer
	lg    *zap.Logger
}

// New creates a Menu over the given store, reading operator input from in
// and writing rendered output to out.
func New(cfg Config, st *store.Store, in io.Reader, out io.Writer, lg *zap.Logger) *Menu {
	if cfg.Prompt == "" {
		cfg.Prompt = "> "
	}
	if cfg.DoneWord == "" {
		cfg.DoneWord = "done"
	}
	return &Menu{
		cfg:   cfg,
		store: st,
		in:    bufio.NewScanner(in),
		out:   out,
		lg:    lg,
	}
}

// Run loops over the menu until the operator quits, input ends, or the
// context is cancelled. Every error raised by an operation is rendered to
// the operator and terminates only that operation, never the loop.
func (m *Menu) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		m.printMenu()
		choice, ok := m.readLine()
		if !ok {
			return nil
		}

		switch strings.TrimSpace(choice) {
		case "1":
			m.listProducts()
		case "2":
			m.showTotal()
		case "3":
			m.makeOrder()
		case "4":
			fmt.Fprintln(m.out, "\nThank you for visiting the store!")
			m.lg.Info("Session ended")
			return nil
		default:
			fmt.Fprintln(m.out, "\nInvalid choice! Please enter a number between 1 and 4.")
		}
	}
}

func (m *Menu) printMenu() {
	fmt.Fprintln(m.out, "\n=== Store Menu ===")
	fmt.Fprintln(m.out, "1. List all products in store")
	fmt.Fprintln(m.out, "2. Show total amount in store")
	fmt.Fprintln(m.out, "3. Make an order")
	fmt.Fprintln(m.out, "4. Quit")
	fmt.Fprint(m.out, m.cfg.Prompt)
}

func (m *Menu) readLine() (string, bool) {
	if !m.in.Scan() {
		return "", false
	}
	return m.in.Text(), true
}

func (m *Menu) listProducts() {
	active := m.store.ActiveProducts()
	if len(active) == 0 {
		fmt.Fprintln(m.out, "\nNo active products available!")
		return
	}

	fmt.Fprintln(m.out, "\nAvailable Products:")
	for i, p := range active {
		fmt.Fprintf(m.out, "%d. %s\n", i+1, p.Display())
	}
}

func (m *Menu) showTotal() {
	fmt.Fprintf(m.out, "\nTotal amount of items in store: %d\n", m.store.TotalQuantity())
}

// makeOrder collects line items until the operator enters the done word,
// then submits the whole order. Any failure aborts the entry: no partial
// order is ever submitted.
func (m *Menu) makeOrder() {
	active := m.store.ActiveProducts()
	if len(active) == 0 {
		fmt.Fprintln(m.out, "\nNo active products available for purchase!")
		return
	}

	m.listProducts()
	fmt.Fprintf(m.out, "\nEnter product number and quantity (e.g. '1 5'), or %q to finish:\n", m.cfg.DoneWord)

	var items []store.LineItem
	for {
		fmt.Fprint(m.out, m.cfg.Prompt)
		line, ok := m.readLine()
		if !ok {
			return
		}
		line = strings.TrimSpace(line)
		if strings.EqualFold(line, m.cfg.DoneWord) {
			break
		}

		item, err := parseLineItem(line, active)
		if err != nil {
			fmt.Fprintf(m.out, "%s\n", err)
			continue
		}
		items = append(items, item)
		fmt.Fprintf(m.out, "Added to cart: %dx %s\n", item.Quantity, item.Product.Name())
	}

	if len(items) == 0 {
		fmt.Fprintln(m.out, "\nNo items in order!")
		return
	}

	total, err := m.store.Order(items)
	if err != nil {
		fmt.Fprintf(m.out, "\nError processing order: %s\n", orderErrorMessage(err))
		m.lg.Warn("Order rejected", zap.Int("lines", len(items)), zap.Error(err))
		return
	}

	fmt.Fprintf(m.out, "\nOrder completed! Total price: %s\n", total.StringFixed(2))
	m.lg.Info("Order completed",
		zap.Int("lines", len(items)),
		zap.String("total", total.StringFixed(2)),
	)
}

// parseLineItem parses "index quantity" against the listed active products.
func parseLineItem(line string, active []product.Product) (store.LineItem, error) {
	fields := strings.Fields(line)
	if len(fields) != 2 {
		return store.LineItem{}, errors.New("Invalid input! Please use format 'product_number quantity'")
	}

	index, err := strconv.Atoi(fields[0])
	if err != nil || index < 1 || index > len(active) {
		return store.LineItem{}, errors.New("Invalid product number!")
	}
	quantity, err := strconv.Atoi(fields[1])
	if err != nil {
		return store.LineItem{}, errors.New("Invalid quantity! Please enter a whole number")
	}

	return store.LineItem{Product: active[index-1], Quantity: quantity}, nil
}

// orderErrorMessage maps domain errors to operator-facing messages, the
// fallback being the raw error text.
func orderErrorMessage(err error) string {
	var (
		stockErr *product.InsufficientStockError
		capErr   *product.MaxQuantityExceededError
		notFound *store.ProductNotFoundError
	)

	switch {
	case errors.Is(err, product.ErrInvalidQuantity):
		return "quantity must be greater than zero"
	case errors.As(err, &stockErr):
		return fmt.Sprintf("not enough %s in stock: requested %d, available %d",
			stockErr.Product, stockErr.Requested, stockErr.Available)
	case errors.As(err, &capErr):
		return fmt.Sprintf("%s is limited to %d per order", capErr.Product, capErr.Max)
	case errors.As(err, &notFound):
		return fmt.Sprintf("%s is not sold in this store", notFound.Name)
	case errors.Is(err, store.ErrEmptyOrder):
		return "the order is empty"
	default:
		return err.Error()
	}
}
