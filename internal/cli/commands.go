package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"braces.dev/errtrace"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"

	"github.com/shapestone/shape-httpval/pkg/http"
)

func newMediaTypeCommand(a *app) (*cobra.Command, error) {
	var flexible bool
	cmd := &cobra.Command{
		Use:   "mediatype <text>...",
		Short: "Parse media types such as Content-Type values",
		Long: "Parse each argument as a media type and print it as JSON. With --flexible,\n" +
			"shorthands such as \"json\" and file extensions such as \".png\" are accepted.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parse := http.ParseMediaType
			if flexible {
				parse = parseFlexible
			}
			var errs error
			for _, arg := range args {
				mt, err := parse(arg)
				if err != nil {
					errs = multierr.Append(errs, a.fail(arg, err))
					continue
				}
				out := http.NodeToInterface(http.MediaTypeToNode(mt)).(map[string]interface{})
				out["known"] = mt.IsKnown()
				if err := a.print(cmd, out); err != nil {
					return err
				}
			}
			return errs
		},
	}
	err := BindOptions(a.v, cmd.Flags(), []Opt{
		{DestP: &flexible, Flag: "flexible", Desc: "accept shorthands and file extensions"},
	})
	return cmd, err
}

// parseFlexible extends http.ParseFlexible with ".ext" file extensions.
func parseFlexible(s string) (http.MediaType, error) {
	if ext, ok := strings.CutPrefix(s, "."); ok {
		if mt, ok := http.FromExtension(ext); ok {
			return mt, nil
		}
		return http.MediaType{}, fmt.Errorf("unknown file extension %q", s)
	}
	return http.ParseFlexible(s)
}

func newAcceptCommand(a *app) (*cobra.Command, error) {
	cmd := &cobra.Command{
		Use:   "accept <text>",
		Short: "Parse an Accept header value into weighted preferences",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prefs, err := http.ParseAccept(args[0])
			if err != nil {
				return a.fail(args[0], err)
			}
			return a.print(cmd, http.NodeToInterface(http.AcceptToNode(prefs)))
		},
	}
	return cmd, nil
}

func newNegotiateCommand(a *app) (*cobra.Command, error) {
	var accept string
	cmd := &cobra.Command{
		Use:   "negotiate --accept <text> <offer>...",
		Short: "Pick the best offered media type for an Accept header",
		Long: "Rank the offered media types against the Accept header and print the\n" +
			"chosen one. Without --accept every offer is acceptable. Exits with an\n" +
			"error when nothing offered is acceptable.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				offered []http.MediaType
				errs    error
			)
			for _, arg := range args {
				mt, err := parseFlexible(arg)
				if err == nil && mt.IsWildcard() {
					err = errors.New("offer must be a concrete media type")
				}
				if err != nil {
					errs = multierr.Append(errs, a.fail(arg, err))
					continue
				}
				offered = append(offered, mt)
			}
			if errs != nil {
				return errs
			}

			var h http.Headers
			if accept != "" {
				h.Add("Accept", accept)
			}
			prefs, err := h.Accept()
			if err != nil {
				return a.fail(accept, err)
			}
			mt, ok := http.Negotiator{Logger: a.logger}.Negotiate(prefs, offered)
			if !ok {
				return ErrNotAcceptable
			}
			return a.print(cmd, http.NodeToInterface(http.MediaTypeToNode(mt)))
		},
	}
	err := BindOptions(a.v, cmd.Flags(), []Opt{
		{DestP: &accept, Flag: "accept", Desc: "Accept header value"},
	})
	return cmd, err
}

func newURICommand(a *app) (*cobra.Command, error) {
	var method string
	cmd := &cobra.Command{
		Use:   "uri [--method M] <target>...",
		Short: "Parse request targets",
		Long: "Parse each argument as a request target and print its form and parts.\n" +
			"With --method only the forms allowed for that method are accepted.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parse := http.ParseURI
			if method != "" {
				m, err := http.ParseMethod(method)
				if err != nil {
					return a.fail(method, err)
				}
				parse = func(s string) (http.URI, error) { return http.ParseRequestTarget(m, s) }
			}
			var errs error
			for _, arg := range args {
				u, err := parse(arg)
				if err != nil {
					errs = multierr.Append(errs, a.fail(arg, err))
					continue
				}
				if err := a.print(cmd, http.NodeToInterface(http.URIToNode(u))); err != nil {
					return err
				}
			}
			return errs
		},
	}
	err := BindOptions(a.v, cmd.Flags(), []Opt{
		{DestP: &method, Flag: "method", Desc: "request method the targets belong to"},
	})
	return cmd, err
}

func newHeadersCommand(a *app) (*cobra.Command, error) {
	var file, get string
	cmd := &cobra.Command{
		Use:   "headers [--file F] [--get NAME]",
		Short: "Parse a block of header lines from stdin or a file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			name, r := "stdin", cmd.InOrStdin()
			if file != "" && file != "-" {
				f, err := os.Open(file)
				if err != nil {
					return errtrace.Wrap(err)
				}
				defer f.Close()
				name, r = file, f
			}
			data, err := io.ReadAll(r)
			if err != nil {
				return errtrace.Wrap(err)
			}
			h, err := http.ParseHeaderBlock(string(data))
			if err != nil {
				return a.fail(name, err)
			}

			if get != "" {
				vals := h.Values(get)
				if len(vals) == 0 {
					return fmt.Errorf("header %q not found", get)
				}
				return a.print(cmd, vals)
			}

			var errs error
			out := map[string]interface{}{
				"headers": http.NodeToInterface(http.HeadersToNode(h)),
			}
			if n := h.ContentLength(); n >= 0 {
				out["contentLength"] = n
			}
			if mt, ok, err := h.ContentType(); err != nil {
				errs = multierr.Append(errs, a.fail(h.Get("Content-Type"), err))
			} else if ok {
				out["contentType"] = http.NodeToInterface(http.MediaTypeToNode(mt))
			}
			if h.Has("Accept") {
				if prefs, err := h.Accept(); err != nil {
					errs = multierr.Append(errs, a.fail(h.Get("Accept"), err))
				} else {
					out["accept"] = http.NodeToInterface(http.AcceptToNode(prefs))
				}
			}
			if err := a.print(cmd, out); err != nil {
				return err
			}
			return errs
		},
	}
	err := BindOptions(a.v, cmd.Flags(), []Opt{
		{DestP: &file, Flag: "file", Default: "-", Desc: "file to read, - for stdin"},
		{DestP: &get, Flag: "get", Desc: "print only the values of this header"},
	})
	return cmd, err
}

func newStatusCommand(a *app) (*cobra.Command, error) {
	cmd := &cobra.Command{
		Use:   "status <code>...",
		Short: "Look up response status codes",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var errs error
			for _, arg := range args {
				st, err := http.ParseStatus(arg)
				if err != nil {
					errs = multierr.Append(errs, a.fail(arg, err))
					continue
				}
				out := map[string]interface{}{
					"code":       st.Code,
					"reason":     st.Reason,
					"class":      st.Class().String(),
					"known":      st.IsKnown(),
					"allowsBody": st.AllowsBody(),
				}
				if err := a.print(cmd, out); err != nil {
					return err
				}
			}
			return errs
		},
	}
	return cmd, nil
}
