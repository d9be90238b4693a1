package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/colorindo-sonhos/storefront-client/internal/api"
	"github.com/colorindo-sonhos/storefront-client/internal/catalog"
	"github.com/colorindo-sonhos/storefront-client/internal/credential"
	"github.com/colorindo-sonhos/storefront-client/internal/favorites"
)

type cli struct {
	cfg    *Config
	client *api.Client
	creds  credential.Store
}

// expireOn401 drops the persisted token when the server rejects it, so the
// next command starts an unauthenticated session instead of failing again.
func (c *cli) expireOn401(err error) error {
	var apiErr *api.Error
	if errors.As(err, &apiErr) && apiErr.Unauthorized() {
		_ = c.creds.Clear()
		return errors.Wrap(err, "session expired, please login again")
	}
	return err
}

func (c *cli) list(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	category := fs.String("category", catalog.AllCategories, "category filter (Todos = all)")
	subcategory := fs.String("subcategory", "", "subcategory filter")
	page := fs.Int("page", 1, "page number")
	featured := fs.Int("featured", 0, "show only the first N highlight items")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *page < 1 {
		*page = 1
	}
	if *category == "" {
		*category = catalog.AllCategories
	}

	// Warm favorites in parallel with the catalog fetch when authenticated.
	favs := favorites.New(c.client, c.creds)
	g, gctx := errgroup.WithContext(ctx)
	if _, authed := c.creds.Get(); authed {
		g.Go(func() error {
			if err := favs.Load(gctx); err != nil {
				return c.expireOn401(err)
			}
			return nil
		})
	}

	updates := make(chan catalog.Snapshot, 4)
	query := catalog.NewQuery(c.client,
		catalog.WithPageSize(c.cfg.PageSize),
		catalog.WithOnUpdate(func(s catalog.Snapshot) { updates <- s }),
	)
	query.SetCategory(gctx, *category)
	query.SetSubcategory(gctx, *subcategory)
	query.SetPage(gctx, *page)
	if query.Snapshot().State == catalog.StateIdle {
		// Every parameter matched the defaults; fetch explicitly.
		query.Refresh(gctx)
	}

	settled := func(s catalog.Snapshot) bool {
		if s.State == catalog.StateFailed {
			return true
		}
		return s.State == catalog.StateReady &&
			s.Category == *category && s.Subcategory == *subcategory && s.Page == *page
	}

	var snap catalog.Snapshot
	g.Go(func() error {
		for {
			select {
			case s := <-updates:
				// Earlier generations may land first; wait for the final one.
				if settled(s) {
					snap = s
					return nil
				}
			case <-gctx.Done():
				return gctx.Err()
			}
		}
	})
	if err := g.Wait(); err != nil {
		return err
	}
	if snap.State == catalog.StateFailed {
		return snap.Err
	}

	if *featured > 0 {
		snap.Items = catalog.Featured(snap.Items, *featured)
	}
	printListing(snap, favs)
	return nil
}

func printListing(snap catalog.Snapshot, favs *favorites.Store) {
	if snap.Category != catalog.AllCategories {
		filter := snap.Category
		if snap.Subcategory != "" {
			filter += " / " + snap.Subcategory
		}
		fmt.Printf("Filter: %s\n", filter)
	}
	for _, p := range snap.Items {
		marker := " "
		if favs.IsFavorite(p.ID) {
			marker = "*"
		}
		fmt.Printf("%s %-12s R$ %8s  %-24s %s\n", marker, p.ID, p.DisplayPrice(), p.Name, p.Category)
	}

	strip := make([]string, 0, len(snap.PageStrip()))
	for _, n := range snap.PageStrip() {
		switch {
		case n == catalog.Ellipsis:
			strip = append(strip, "...")
		case n == snap.Page:
			strip = append(strip, fmt.Sprintf("[%d]", n))
		default:
			strip = append(strip, fmt.Sprintf("%d", n))
		}
	}
	fmt.Printf("\n%d items, page %s\n", snap.Total, strings.Join(strip, " "))
}

func (c *cli) get(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: storefront get <product-id>")
	}
	id := args[0]

	lookup := catalog.NewLookup(c.client)
	p, err := lookup.GetByID(ctx, id)
	if err != nil {
		var apiErr *api.Error
		if errors.As(err, &apiErr) && apiErr.NotFound() {
			return fmt.Errorf("product %q not found", id)
		}
		return err
	}

	fmt.Printf("%s\n", p.Name)
	fmt.Printf("  id:       %s\n", p.ID)
	fmt.Printf("  price:    R$ %s\n", p.DisplayPrice())
	fmt.Printf("  category: %s\n", p.Category)
	if p.Subcategory != "" {
		fmt.Printf("  subcat:   %s\n", p.Subcategory)
	}
	fmt.Printf("  image:    %s\n", p.DisplayImage())
	if p.Description != "" {
		fmt.Printf("  %s\n", p.Description)
	}

	if _, authed := c.creds.Get(); authed {
		if fav, err := c.client.CheckFavorite(ctx, p.ID); err == nil && fav {
			fmt.Println("  * favorited")
		}
	}
	return nil
}

func (c *cli) login(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	if err := fs.Parse(args); err != nil {
		return err
	}

	resp, err := c.client.Login(ctx, *email, *password)
	if err != nil {
		return err
	}
	// The token lifecycle belongs to this flow, not to the API client.
	if err := c.creds.Set(resp.Token); err != nil {
		return err
	}
	if resp.IsAdmin {
		fmt.Println("logged in (admin)")
	} else {
		fmt.Println("logged in")
	}
	return nil
}

func (c *cli) logout() error {
	if err := c.creds.Clear(); err != nil {
		return err
	}
	fmt.Println("logged out")
	return nil
}

func (c *cli) register(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("register", flag.ContinueOnError)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	if err := fs.Parse(args); err != nil {
		return err
	}

	resp, err := c.client.Register(ctx, *email, *password)
	if err != nil {
		return err
	}
	if resp.Message != "" {
		fmt.Println(resp.Message)
	} else {
		fmt.Println("account created")
	}
	return nil
}

func (c *cli) fav(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: storefront fav <product-id>")
	}
	id := args[0]

	favs := favorites.New(c.client, c.creds)
	if err := favs.Load(ctx); err != nil {
		return c.expireOn401(err)
	}

	action, err := favs.Toggle(ctx, id)
	switch {
	case errors.Is(err, favorites.ErrAuthRequired):
		return fmt.Errorf("favorites require login")
	case err != nil:
		return c.expireOn401(err)
	}
	fmt.Printf("%s %s\n", action, id)
	return nil
}

func (c *cli) favs(ctx context.Context, args []string) error {
	if len(args) > 0 {
		switch args[0] {
		case "count":
			count, err := c.client.CountFavorites(ctx)
			if err != nil {
				return c.expireOn401(err)
			}
			fmt.Println(count)
			return nil
		case "clear":
			favs := favorites.New(c.client, c.creds)
			if err := favs.Clear(ctx); err != nil {
				if errors.Is(err, favorites.ErrAuthRequired) {
					return fmt.Errorf("favorites require login")
				}
				return c.expireOn401(err)
			}
			fmt.Println("favorites cleared")
			return nil
		default:
			return fmt.Errorf("unknown favs subcommand %q", args[0])
		}
	}

	items, err := c.client.ListFavorites(ctx)
	if err != nil {
		return c.expireOn401(err)
	}
	for _, p := range items {
		fmt.Printf("%-12s R$ %8s  %s\n", p.ID, p.DisplayPrice(), p.Name)
	}
	return nil
}

func (c *cli) admin(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: storefront admin <create|update|delete> [flags]")
	}
	cmd, rest := args[0], args[1:]
	switch cmd {
	case "create":
		return c.adminSave(ctx, "", rest)
	case "update":
		if len(rest) == 0 {
			return fmt.Errorf("usage: storefront admin update <product-id> [flags]")
		}
		return c.adminSave(ctx, rest[0], rest[1:])
	case "delete":
		if len(rest) != 1 {
			return fmt.Errorf("usage: storefront admin delete <product-id>")
		}
		if err := c.client.DeleteProduct(ctx, rest[0]); err != nil {
			return c.expireOn401(err)
		}
		fmt.Println("deleted", rest[0])
		return nil
	default:
		return fmt.Errorf("unknown admin subcommand %q", cmd)
	}
}

// adminSave implements create (id == "") and update (id != "").
func (c *cli) adminSave(ctx context.Context, id string, args []string) error {
	name := "create"
	if id != "" {
		name = "update"
	}
	fs := flag.NewFlagSet("admin "+name, flag.ContinueOnError)
	pname := fs.String("name", "", "product name")
	price := fs.String("price", "", "product price, e.g. 35.90")
	category := fs.String("category", "", "product category")
	subcategory := fs.String("subcategory", "", "product subcategory")
	description := fs.String("description", "", "product description")
	imagePath := fs.String("image", "", "path to the product image file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	parsed, err := decimal.NewFromString(*price)
	if err != nil {
		return errors.Wrapf(err, "invalid price %q", *price)
	}

	draft := api.ProductDraft{
		Name:        *pname,
		Price:       parsed,
		Category:    *category,
		Subcategory: *subcategory,
		Description: *description,
	}
	if *imagePath != "" {
		file, err := os.Open(*imagePath)
		if err != nil {
			return errors.Wrap(err, "open image")
		}
		defer file.Close()
		draft.Image = &api.FormFile{
			Field:  "image",
			Name:   filepath.Base(*imagePath),
			Reader: file,
		}
	}

	var saved string
	if id == "" {
		p, err := c.client.CreateProduct(ctx, draft)
		if err != nil {
			return c.expireOn401(err)
		}
		saved = p.ID
	} else {
		p, err := c.client.UpdateProduct(ctx, id, draft)
		if err != nil {
			return c.expireOn401(err)
		}
		saved = p.ID
	}
	fmt.Println("saved", saved)
	return nil
}
