package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/s0up4200/wgapi/client"
	"github.com/s0up4200/wgapi/filter"
	"github.com/s0up4200/wgapi/request"
)

var (
	paramFlags      []string
	exactParamFlags []string
	accessToken     string
	whereExpr       string
	projectExpr     string
	compactOutput   bool
)

var compiler = filter.NewCompiler(filter.WithCache(16))

// getCmd represents the get command
var getCmd = &cobra.Command{
	Use:   "get <block> [method]",
	Short: "Send a GET request to an API method",
	Long: `Send a GET request to any method block and print the decoded data.

Examples:
  wgapi get account list --param search=tanker --param limit=5
  wgapi get account info --param account_id=500000001 --expr 'data["500000001"].nickname'
  wgapi get account list --param search=tank --where 'istartsWith(nickname, "tanker")'
  wgapi get servers info --cluster wgn`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRequest(cmd.Context(), cmd.OutOrStdout(), false, args)
	},
}

// postCmd represents the post command
var postCmd = &cobra.Command{
	Use:   "post <block> [method]",
	Short: "Send a POST request to an API method",
	Long:  `Send a POST request to any method block. Parameters are sent both in the query and as a form body.`,
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRequest(cmd.Context(), cmd.OutOrStdout(), true, args)
	},
}

func init() {
	for _, c := range []*cobra.Command{getCmd, postCmd} {
		c.Flags().StringArrayVarP(&paramFlags, "param", "p", nil, "request parameter as name=value (repeatable, lower-cased)")
		c.Flags().StringArrayVar(&exactParamFlags, "exact-param", nil, "request parameter as name=value, value case kept (repeatable)")
		c.Flags().StringVar(&accessToken, "access-token", "", "access token for private data")
		c.Flags().StringVarP(&whereExpr, "where", "w", "", "keep only entries matching this expression")
		c.Flags().StringVarP(&projectExpr, "expr", "e", "", "expression evaluated against the data, bound to 'data'")
		c.Flags().BoolVar(&compactOutput, "compact", false, "print compact JSON")
		rootCmd.AddCommand(c)
	}
}

func runRequest(ctx context.Context, out io.Writer, post bool, args []string) error {
	if ctx == nil {
		ctx = context.Background()
	}

	params, err := parseParams(paramFlags, request.NewParam)
	if err != nil {
		return err
	}
	exact, err := parseParams(exactParamFlags, request.ExactParam)
	if err != nil {
		return err
	}

	// Compile before sending so a typo does not cost a request
	var where, projection *filter.Program
	if whereExpr != "" {
		if where, err = compiler.CompilePredicate(whereExpr); err != nil {
			return fmt.Errorf("invalid --where expression: %w", err)
		}
	}
	if projectExpr != "" {
		if projection, err = compiler.Compile(projectExpr); err != nil {
			return fmt.Errorf("invalid --expr expression: %w", err)
		}
	}

	base, err := baseBuilder()
	if err != nil {
		return err
	}
	method := ""
	if len(args) > 1 {
		method = args[1]
	}
	b := base.WithMethod(args[0], method).WithParameters(params...).WithParameters(exact...)
	if accessToken != "" {
		b = b.WithAccessToken(accessToken)
	}

	c, err := newClient()
	if err != nil {
		return err
	}

	logger.Debug().
		Str("cluster", b.Cluster().String()).
		Str("region", b.Region().String()).
		Str("block", b.MethodBlock()).
		Str("method", b.MethodName()).
		Int("params", len(b.Params())).
		Msg("Sending request")

	var env *client.Envelope[any]
	if post {
		env, err = client.PostEnvelope[any](ctx, c, b)
	} else {
		env, err = client.GetEnvelope[any](ctx, c, b)
	}
	if err != nil {
		return err
	}

	if env.Meta != nil {
		logger.Info().Int("count", env.Meta.Count).Msg("Request completed")
	}

	result, err := filter.Apply(ctx, where, projection, env.Data)
	if err != nil {
		return err
	}
	return printJSON(out, result, compactOutput)
}

// parseParams splits name=value flags into parameters
func parseParams(raw []string, build func(name, value string) request.Param) ([]request.Param, error) {
	params := make([]request.Param, 0, len(raw))
	for _, kv := range raw {
		name, value, ok := strings.Cut(kv, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid parameter %q (expected name=value)", kv)
		}
		params = append(params, build(name, value))
	}
	return params, nil
}

func printJSON(out io.Writer, v any, compact bool) error {
	enc := json.NewEncoder(out)
	if !compact {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	return nil
}
