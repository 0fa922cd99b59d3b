package app

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/Adda-Baaj/simple-uber/pkg/uber"
	"gopkg.in/yaml.v3"
)

const (
	OutputJSON = "json"
	OutputYAML = "yaml"
)

// Exit codes returned by ridectl.
const (
	ExitOK       = 0
	ExitFailure  = 1
	ExitAPIError = 2
)

// ErrUsage marks errors caused by bad command-line input.
var ErrUsage = errors.New("usage")

// QueryAPI is the part of uber.Client that ridectl exposes.
type QueryAPI interface {
	GetProducts(ctx context.Context, lat, lon float64) (*uber.Payload, error)
	GetProduct(ctx context.Context, productID string) (*uber.Payload, error)
	GetPriceEstimates(ctx context.Context, startLat, startLon, endLat, endLon float64) (*uber.Payload, error)
	GetTimeEstimates(ctx context.Context, startLat, startLon float64, opts ...uber.TimeEstimateOption) (*uber.Payload, error)
	Get(ctx context.Context, path string, query uber.Query) (*uber.Payload, error)
}

// QueryCommand runs one ridectl subcommand and renders the payload.
type QueryCommand struct {
	api    QueryAPI
	out    io.Writer
	format string
}

// NewQueryCommand validates the output format.
func NewQueryCommand(api QueryAPI, out io.Writer, format string) (*QueryCommand, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	switch format {
	case "":
		format = OutputJSON
	case OutputJSON, OutputYAML:
	default:
		return nil, fmt.Errorf("%w: unknown output format %q (expected json or yaml)", ErrUsage, format)
	}
	if api == nil {
		return nil, fmt.Errorf("query api must not be nil")
	}
	return &QueryCommand{api: api, out: out, format: format}, nil
}

// QueryUsage lists the subcommands.
const QueryUsage = `usage: ridectl [-output json|yaml] [-sandbox] <command> [args]

commands:
  products LAT LON                      products available at a location
  product ID                            details of one product
  price SLAT SLON ELAT ELON             price estimates for a trip
  time LAT LON [-customer-uuid U] [-product-id P]
                                        pickup time estimates
  get PATH [key=value ...]              raw GET against the API version root

Use -- before a negative first coordinate, e.g. "time -- -33.86 151.20".
`

// Execute runs the subcommand in args[0] with the remaining arguments.
func (c *QueryCommand) Execute(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: missing command", ErrUsage)
	}

	var (
		payload *uber.Payload
		err     error
	)
	switch cmd, rest := args[0], args[1:]; cmd {
	case "products":
		payload, err = c.products(ctx, rest)
	case "product":
		payload, err = c.product(ctx, rest)
	case "price":
		payload, err = c.price(ctx, rest)
	case "time":
		payload, err = c.time(ctx, rest)
	case "get":
		payload, err = c.get(ctx, rest)
	default:
		return fmt.Errorf("%w: unknown command %q", ErrUsage, cmd)
	}
	if err != nil {
		return err
	}
	return c.render(payload)
}

func (c *QueryCommand) products(ctx context.Context, args []string) (*uber.Payload, error) {
	coords, err := coordinates("products", args, 2)
	if err != nil {
		return nil, err
	}
	return c.api.GetProducts(ctx, coords[0], coords[1])
}

func (c *QueryCommand) product(ctx context.Context, args []string) (*uber.Payload, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("%w: product expects 1 argument, got %d", ErrUsage, len(args))
	}
	return c.api.GetProduct(ctx, args[0])
}

func (c *QueryCommand) price(ctx context.Context, args []string) (*uber.Payload, error) {
	coords, err := coordinates("price", args, 4)
	if err != nil {
		return nil, err
	}
	return c.api.GetPriceEstimates(ctx, coords[0], coords[1], coords[2], coords[3])
}

func (c *QueryCommand) time(ctx context.Context, args []string) (*uber.Payload, error) {
	fs := flag.NewFlagSet("time", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	customerUUID := fs.String("customer-uuid", "", "customer UUID")
	productID := fs.String("product-id", "", "product ID")

	// Flags may come before or after the two coordinates.
	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUsage, err)
	}
	positional := fs.Args()
	if len(positional) > 2 {
		if err := fs.Parse(positional[2:]); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUsage, err)
		}
		if len(fs.Args()) > 0 {
			return nil, fmt.Errorf("%w: unexpected arguments %v", ErrUsage, fs.Args())
		}
		positional = positional[:2]
	}

	coords, err := coordinates("time", positional, 2)
	if err != nil {
		return nil, err
	}

	var opts []uber.TimeEstimateOption
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "customer-uuid":
			opts = append(opts, uber.WithCustomerUUID(*customerUUID))
		case "product-id":
			opts = append(opts, uber.WithProductID(*productID))
		}
	})
	return c.api.GetTimeEstimates(ctx, coords[0], coords[1], opts...)
}

func (c *QueryCommand) get(ctx context.Context, args []string) (*uber.Payload, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("%w: get expects a path", ErrUsage)
	}
	path := args[0]
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	var query uber.Query
	for _, kv := range args[1:] {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("%w: query parameter %q is not key=value", ErrUsage, kv)
		}
		query = query.Add(key, value)
	}
	return c.api.Get(ctx, path, query)
}

func coordinates(cmd string, args []string, n int) ([]float64, error) {
	if len(args) != n {
		return nil, fmt.Errorf("%w: %s expects %d coordinates, got %d", ErrUsage, cmd, n, len(args))
	}
	out := make([]float64, n)
	for i, a := range args {
		f, err := uber.ParseCoordinate(a)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUsage, err)
		}
		out[i] = f
	}
	return out, nil
}

func (c *QueryCommand) render(p *uber.Payload) error {
	switch c.format {
	case OutputYAML:
		enc := yaml.NewEncoder(c.out)
		enc.SetIndent(2)
		if err := enc.Encode(p.Value()); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	default:
		enc := json.NewEncoder(c.out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(p); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		return nil
	}
}

// ExitCode maps an Execute error to the process exit status.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, uber.ErrAPI):
		return ExitAPIError
	default:
		return ExitFailure
	}
}

// DescribeError writes a human-readable error report. API errors list every
// detail the provider returned.
func DescribeError(w io.Writer, err error) {
	apiErr, ok := uber.AsAPIError(err)
	if !ok {
		fmt.Fprintf(w, "error: %v\n", err)
		return
	}

	fmt.Fprintf(w, "api error: http %d\n", apiErr.HTTPCode())
	if code, ok := apiErr.ErrorCode(); ok {
		fmt.Fprintf(w, "  code:    %s\n", code)
	}
	if msg, ok := apiErr.ErrorMessage(); ok {
		fmt.Fprintf(w, "  message: %s\n", msg)
	}
	if fields, ok := apiErr.Fields(); ok {
		b, mErr := json.Marshal(fields)
		if mErr != nil {
			b = []byte(fmt.Sprint(fields))
		}
		fmt.Fprintf(w, "  fields:  %s\n", b)
	}
}
