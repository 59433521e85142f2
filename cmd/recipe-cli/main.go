// Command recipe-cli 從命令列查詢食譜 API
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"recipe-browser/internal/client"
	"recipe-browser/internal/core/recipe"
	"recipe-browser/internal/core/search"
)

const (
	exitCodeSuccess = 0
	exitCodeFailure = 1
	exitCodeError   = 2
)

// Config 命令列設定
type Config struct {
	URL          string
	Timeout      time.Duration
	OutputFormat string
	Listing      bool
	Command      string
	Args         []string
}

func main() {
	cfg := parseFlags()
	os.Exit(run(cfg))
}

// parseFlags 解析命令列參數
func parseFlags() Config {
	cfg := Config{}

	flag.StringVar(&cfg.URL, "url", "", "API base URL (default $RECIPE_API_URL or http://localhost:8080)")
	flag.DurationVar(&cfg.Timeout, "timeout", 10*time.Second, "Request timeout")
	flag.StringVar(&cfg.OutputFormat, "format", "text", "Output format: text, json")
	flag.BoolVar(&cfg.Listing, "all", false, "Use the listing endpoint (sorted by name) instead of search")
	flag.Usage = usage
	flag.Parse()

	if cfg.URL == "" {
		cfg.URL = os.Getenv("RECIPE_API_URL")
	}
	if cfg.URL == "" {
		cfg.URL = "http://localhost:8080"
	}

	args := flag.Args()
	if len(args) > 0 {
		cfg.Command = args[0]
		cfg.Args = args[1:]
	}
	return cfg
}

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: recipe-cli [flags] <command> [args]

Commands:
  search key=value ...   search recipes (e.g. search_term=soup max_calories=300 page=2)
  newest [limit]         newest recipes
  show <id>              recipe detail with reviews
  category <name> [page] recipes with images in a category
  ingredients            selectable pantry ingredients and units
  health                 service health

Flags:
`)
	flag.PrintDefaults()
}

func run(cfg Config) int {
	if cfg.Command == "" {
		usage()
		return exitCodeError
	}

	c := client.New(cfg.URL, cfg.Timeout)
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	defer cancel()

	result, err := dispatch(ctx, c, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		var apiErr *client.APIError
		if errors.As(err, &apiErr) {
			return exitCodeFailure
		}
		return exitCodeError
	}

	if cfg.OutputFormat == "json" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return exitCodeError
		}
		return exitCodeSuccess
	}
	printText(result)
	return exitCodeSuccess
}

func dispatch(ctx context.Context, c *client.Client, cfg Config) (any, error) {
	switch cfg.Command {
	case "search":
		query, err := searchQuery(cfg.Args, cfg.Listing)
		if err != nil {
			return nil, err
		}
		if cfg.Listing {
			return c.All(ctx, query)
		}
		return c.Search(ctx, query)
	case "newest":
		limit := 0
		if len(cfg.Args) > 0 {
			n, err := strconv.Atoi(cfg.Args[0])
			if err != nil {
				return nil, fmt.Errorf("invalid limit %q", cfg.Args[0])
			}
			limit = n
		}
		return c.Newest(ctx, limit)
	case "show":
		if len(cfg.Args) != 1 {
			return nil, fmt.Errorf("show requires a recipe id")
		}
		id, err := strconv.ParseInt(cfg.Args[0], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid recipe id %q", cfg.Args[0])
		}
		return c.Detail(ctx, id)
	case "category":
		if len(cfg.Args) == 0 {
			return nil, fmt.Errorf("category requires a name")
		}
		page := 1
		if len(cfg.Args) > 1 {
			n, err := strconv.Atoi(cfg.Args[1])
			if err != nil {
				return nil, fmt.Errorf("invalid page %q", cfg.Args[1])
			}
			page = n
		}
		return c.Category(ctx, cfg.Args[0], page)
	case "ingredients":
		return c.PantryIngredients(ctx)
	case "health":
		return c.Health(ctx)
	default:
		return nil, fmt.Errorf("unknown command %q", cfg.Command)
	}
}

// searchQuery 把 key=value 參數整理成查詢字串，無效的條件在送出前就會被略過
func searchQuery(args []string, listing bool) (url.Values, error) {
	values := url.Values{}
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid filter %q, expected key=value", arg)
		}
		values.Add(key, value)
	}

	opts := search.SearchOptions
	if listing {
		opts = search.ListingOptions
	}
	return search.EncodeCriteria(search.ParseCriteria(values, opts)), nil
}

func printText(result any) {
	switch r := result.(type) {
	case *client.SearchPage:
		fmt.Printf("%d results, page %d of %d (%s)\n", r.TotalResults, r.Page, r.TotalPages, r.Criteria)
		printRecipes(r.Results)
	case *recipe.CategoryResult:
		fmt.Printf("%s: %d results, page %d of %d\n", r.Category, r.TotalResults, r.Number, r.TotalPages)
		printRecipes(r.Recipes)
	case []recipe.Recipe:
		printRecipes(r)
	case *client.RecipeDetail:
		printRecipes([]recipe.Recipe{r.Recipe})
		if r.Recipe.Ingredients != "" {
			fmt.Printf("  ingredients: %s\n", r.Recipe.Ingredients)
		}
		for _, rev := range r.Reviews {
			fmt.Printf("  [%d/5] %s: %s\n", rev.Rating, rev.AuthorName, rev.Text)
		}
	case *client.Ingredients:
		fmt.Printf("ingredients: %s\n", strings.Join(r.Ingredients, ", "))
		fmt.Printf("units: %s\n", strings.Join(r.Units, ", "))
	case map[string]any:
		for k, v := range r {
			fmt.Printf("%s: %v\n", k, v)
		}
	default:
		fmt.Printf("%v\n", r)
	}
}

func printRecipes(rows []recipe.Recipe) {
	for _, r := range rows {
		rating := "-"
		if r.AverageRating != nil {
			rating = strconv.FormatFloat(*r.AverageRating, 'f', 1, 64)
		}
		fmt.Printf("%6d  %-40s  %-20s  %s\n", r.ID, r.Name, r.AuthorName, rating)
	}
}
