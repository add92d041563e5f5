package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"time"

	"museumhub/pkg/models"
)

const defaultBaseURL = "http://localhost:8080"

type artworkListResponse struct {
	Items      []models.Artwork `json:"items"`
	Page       int              `json:"page"`
	PerPage    int              `json:"per_page"`
	Total      int              `json:"total"`
	TotalPages int              `json:"total_pages"`
}

func main() {
	global := flag.NewFlagSet("museumhub", flag.ExitOnError)
	baseURL := global.String("api", defaultBaseURL, "API base URL")
	asJSON := global.Bool("json", false, "print raw JSON instead of tables")
	if err := global.Parse(os.Args[1:]); err != nil {
		log.Fatalf("parse flags: %v", err)
	}
	args := global.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}

	ctx := context.Background()
	cmd := args[0]
	sub := ""
	rest := []string{}
	if len(args) > 1 {
		sub = args[1]
		rest = args[2:]
	}

	c := &cli{
		client:  &http.Client{Timeout: 30 * time.Second},
		baseURL: *baseURL,
		json:    *asJSON,
		out:     os.Stdout,
	}

	switch cmd {
	case "artworks":
		c.handleArtworks(ctx, sub, rest)
	case "exhibitions":
		c.handleExhibitions(ctx, sub, rest)
	case "events":
		c.handleEvents(sub, rest)
	case "export":
		c.handleExport(ctx, sub, rest)
	default:
		printUsage()
		os.Exit(1)
	}
}

func (c *cli) handleArtworks(ctx context.Context, sub string, args []string) {
	switch sub {
	case "list":
		fs := flag.NewFlagSet("artworks list", flag.ExitOnError)
		query := fs.String("q", "", "search query")
		typ := fs.String("type", "", "category: all, paintings, prints, photographs, sculpture, ceramics, furniture")
		sort := fs.String("sort", "", "title, year-asc or year-desc")
		page := fs.Int("page", 1, "page number")
		perPage := fs.Int("per-page", 20, "page size")
		_ = fs.Parse(args)

		u, err := url.Parse(c.baseURL + "/artworks")
		if err != nil {
			log.Fatalf("invalid base url: %v", err)
		}
		qv := u.Query()
		if *query != "" {
			qv.Set("q", *query)
		}
		if *typ != "" {
			qv.Set("type", *typ)
		}
		if *sort != "" {
			qv.Set("sort", *sort)
		}
		qv.Set("page", strconv.Itoa(*page))
		qv.Set("per_page", strconv.Itoa(*perPage))
		u.RawQuery = qv.Encode()

		var resp artworkListResponse
		if err := c.doJSON(ctx, http.MethodGet, u.String(), nil, &resp); err != nil {
			log.Fatalf("list failed: %v", err)
		}
		if c.json {
			c.printJSON(resp)
			return
		}
		c.printArtworks(resp.Items)
		fmt.Fprintf(c.out, "page %d/%d, %d artworks\n", resp.Page, resp.TotalPages, resp.Total)
	case "show":
		fs := flag.NewFlagSet("artworks show", flag.ExitOnError)
		source := fs.String("source", "", "museum source: aic or met")
		id := fs.String("id", "", "artwork id")
		_ = fs.Parse(args)
		if *source == "" || *id == "" {
			log.Fatal("source and id are required")
		}

		art, err := c.fetchArtwork(ctx, *source, *id)
		if err != nil {
			log.Fatalf("show failed: %v", err)
		}
		if c.json {
			c.printJSON(art)
			return
		}
		c.printArtworkDetail(art)
	default:
		log.Fatal("usage: museumhub artworks <list|show>")
	}
}

func (c *cli) handleExhibitions(ctx context.Context, sub string, args []string) {
	switch sub {
	case "list":
		var resp []models.Exhibition
		if err := c.doJSON(ctx, http.MethodGet, c.baseURL+"/exhibitions", nil, &resp); err != nil {
			log.Fatalf("list failed: %v", err)
		}
		if c.json {
			c.printJSON(resp)
			return
		}
		c.printExhibitions(resp)
	case "create":
		fs := flag.NewFlagSet("exhibitions create", flag.ExitOnError)
		title := fs.String("title", "", "exhibition title")
		description := fs.String("description", "", "description")
		_ = fs.Parse(args)
		if *title == "" {
			log.Fatal("title is required")
		}

		payload := map[string]string{"title": *title, "description": *description}
		var resp models.Exhibition
		if err := c.doJSON(ctx, http.MethodPost, c.baseURL+"/exhibitions", payload, &resp); err != nil {
			log.Fatalf("create failed: %v", err)
		}
		fmt.Fprintf(c.out, "created %q (%s)\n", resp.Title, resp.Slug)
	case "show":
		ex := c.mustExhibition(ctx, "exhibitions show", args)
		if c.json {
			c.printJSON(ex)
			return
		}
		c.printExhibitionDetail(ex)
	case "delete":
		ex := c.mustExhibition(ctx, "exhibitions delete", args)
		if err := c.doJSON(ctx, http.MethodDelete, c.baseURL+"/exhibitions/"+url.PathEscape(ex.ID), nil, nil); err != nil {
			log.Fatalf("delete failed: %v", err)
		}
		fmt.Fprintf(c.out, "deleted %q\n", ex.Title)
	case "add":
		fs := flag.NewFlagSet("exhibitions add", flag.ExitOnError)
		exhibition := fs.String("exhibition", "", "exhibition id or slug; empty adds to the selection")
		source := fs.String("source", "", "museum source: aic or met")
		id := fs.String("id", "", "artwork id")
		note := fs.String("note", "", "curator note")
		_ = fs.Parse(args)
		if *source == "" || *id == "" {
			log.Fatal("source and id are required")
		}

		art, err := c.fetchArtwork(ctx, *source, *id)
		if err != nil {
			log.Fatalf("lookup failed: %v", err)
		}
		endpoint := c.baseURL + "/exhibitions/selected/artworks"
		if *exhibition != "" {
			endpoint = c.baseURL + "/exhibitions/" + url.PathEscape(*exhibition) + "/artworks"
		}
		payload := struct {
			models.Artwork
			Note string `json:"note,omitempty"`
		}{*art, *note}
		if err := c.doJSON(ctx, http.MethodPost, endpoint, payload, nil); err != nil {
			log.Fatalf("add failed: %v", err)
		}
		fmt.Fprintf(c.out, "added %s\n", displayTitle(art.Title))
	case "remove":
		fs := flag.NewFlagSet("exhibitions remove", flag.ExitOnError)
		source := fs.String("source", "", "museum source: aic or met")
		id := fs.String("id", "", "artwork id")
		_ = fs.Parse(args)
		if *source == "" || *id == "" {
			log.Fatal("source and id are required")
		}

		endpoint := c.baseURL + "/exhibitions/artworks/" + url.PathEscape(*source) + "/" + url.PathEscape(*id)
		var resp struct {
			Removed int `json:"removed"`
		}
		if err := c.doJSON(ctx, http.MethodDelete, endpoint, nil, &resp); err != nil {
			log.Fatalf("remove failed: %v", err)
		}
		fmt.Fprintf(c.out, "removed from %d place(s)\n", resp.Removed)
	case "selected":
		var resp []models.ExhibitionArtwork
		if err := c.doJSON(ctx, http.MethodGet, c.baseURL+"/exhibitions/selected", nil, &resp); err != nil {
			log.Fatalf("selected failed: %v", err)
		}
		if c.json {
			c.printJSON(resp)
			return
		}
		c.printExhibitionArtworks(resp)
	default:
		log.Fatal("usage: museumhub exhibitions <list|create|show|delete|add|remove|selected>")
	}
}

func (c *cli) handleEvents(sub string, args []string) {
	switch sub {
	case "listen":
		fs := flag.NewFlagSet("events listen", flag.ExitOnError)
		addr := fs.String("addr", "localhost:7070", "TCP event stream address")
		pretty := fs.Bool("pretty", false, "pretty-print JSON")
		_ = fs.Parse(args)
		if err := c.runEventsTCP(*addr, *pretty); err != nil {
			log.Fatalf("events listen failed: %v", err)
		}
	case "subscribe":
		wsURL, err := websocketURL(c.baseURL, "/ws")
		if err != nil {
			log.Fatalf("invalid base url: %v", err)
		}
		if err := c.runWebSocket(wsURL); err != nil {
			log.Fatalf("websocket failed: %v", err)
		}
	default:
		log.Fatal("usage: museumhub events <listen|subscribe>")
	}
}

func (c *cli) handleExport(ctx context.Context, sub string, args []string) {
	fs := flag.NewFlagSet("export "+sub, flag.ExitOnError)
	exhibition := fs.String("exhibition", "", "exhibition id or slug; empty exports the selection")
	out := fs.String("out", "", "output file")
	_ = fs.Parse(args)
	if *out == "" {
		log.Fatal("output path is required")
	}

	items, err := c.exportItems(ctx, *exhibition)
	if err != nil {
		log.Fatalf("export failed: %v", err)
	}

	switch sub {
	case "json":
		err = writeJSON(*out, items)
	case "csv":
		err = writeCSV(*out, items)
	default:
		log.Fatal("usage: museumhub export <json|csv>")
	}
	if err != nil {
		log.Fatalf("export failed: %v", err)
	}
	fmt.Fprintf(c.out, "exported %d artworks to %s\n", len(items), *out)
}

func (c *cli) mustExhibition(ctx context.Context, name string, args []string) *models.Exhibition {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	id := fs.String("id", "", "exhibition id or slug")
	_ = fs.Parse(args)
	if *id == "" {
		log.Fatal("exhibition id is required")
	}
	var ex models.Exhibition
	if err := c.doJSON(ctx, http.MethodGet, c.baseURL+"/exhibitions/"+url.PathEscape(*id), nil, &ex); err != nil {
		log.Fatalf("lookup failed: %v", err)
	}
	return &ex
}

func (c *cli) exportItems(ctx context.Context, exhibition string) ([]models.ExhibitionArtwork, error) {
	if exhibition == "" {
		var items []models.ExhibitionArtwork
		err := c.doJSON(ctx, http.MethodGet, c.baseURL+"/exhibitions/selected", nil, &items)
		return items, err
	}
	var ex models.Exhibition
	if err := c.doJSON(ctx, http.MethodGet, c.baseURL+"/exhibitions/"+url.PathEscape(exhibition), nil, &ex); err != nil {
		return nil, err
	}
	return ex.Artworks, nil
}

func printUsage() {
	fmt.Println("museumhub [-api URL] [-json] <command> [subcommand] [flags]")
	fmt.Println("commands:")
	fmt.Println("  artworks list|show")
	fmt.Println("  exhibitions list|create|show|delete|add|remove|selected")
	fmt.Println("  events listen|subscribe")
	fmt.Println("  export json|csv")
}
