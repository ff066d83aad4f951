// Copyright 2021 The restclient Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gogama/restclient"
	"github.com/gogama/restclient/request"
	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type callOptions struct {
	cfgPath string
	base    string
	headers []string
	params  []string
	data    string
	raw     bool
	verbose bool
}

func newRootCmd() *cobra.Command {
	var opts callOptions
	cmd := &cobra.Command{
		Use:           "restcall [flags] METHOD SEGMENT...",
		Short:         "Make one REST API call and print the JSON result",
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCall(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), opts, args)
		},
	}
	fs := cmd.Flags()
	fs.StringVarP(&opts.cfgPath, "config", "c", "", "client config yaml path")
	fs.StringVar(&opts.base, "base", "", "base URL (overrides config)")
	fs.StringArrayVarP(&opts.headers, "header", "H", nil, "header field as key:value, repeatable")
	fs.StringArrayVarP(&opts.params, "query", "q", nil, "query parameter as key=value, repeatable")
	fs.StringVarP(&opts.data, "data", "d", "", "JSON request body")
	fs.BoolVar(&opts.raw, "raw", false, "print status and raw body instead of decoded JSON")
	fs.BoolVarP(&opts.verbose, "verbose", "v", false, "debug logging to stderr")
	return cmd
}

func runCall(ctx context.Context, out, errOut io.Writer, opts callOptions, args []string) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	callOpts, err := buildOptions(opts)
	if err != nil {
		return err
	}

	client := cfg.NewClient()
	client.Logger = newLogger(errOut, opts.verbose)
	if err = client.Startup(ctx); err != nil {
		return err
	}
	defer client.Close()

	segments := make([]interface{}, 0, len(args)-1)
	for _, s := range args[1:] {
		segments = append(segments, s)
	}
	r, err := client.API().Join(segments...).Do(ctx, args[0], callOpts...)
	if apiErr, ok := client.Error(err); ok {
		fmt.Fprintln(errOut, apiErr.Response.Status)
		if len(apiErr.Body) > 0 {
			fmt.Fprintln(out, strings.TrimRight(string(apiErr.Body), "\n"))
		}
		return err
	}
	if err != nil {
		return err
	}

	if opts.raw {
		defer r.Response.Body.Close()
		fmt.Fprintln(out, r.Response.Status)
		_, err = io.Copy(out, r.Response.Body)
		return err
	}
	if r.Value == nil {
		return nil
	}
	b, err := json.MarshalIndent(r.Value, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, string(b))
	return err
}

func loadConfig(opts callOptions) (*restclient.Config, error) {
	cfg := &restclient.Config{}
	if opts.cfgPath != "" {
		var err error
		if cfg, err = restclient.LoadConfig(opts.cfgPath); err != nil {
			return nil, err
		}
	}
	if opts.base != "" {
		cfg.BaseURL = opts.base
	}
	if cfg.BaseURL == "" {
		return nil, errors.New("no base URL: use --base or --config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func buildOptions(opts callOptions) ([]request.Option, error) {
	var callOpts []request.Option
	for _, h := range opts.headers {
		k, v, ok := strings.Cut(h, ":")
		k = strings.TrimSpace(k)
		if !ok || k == "" {
			return nil, fmt.Errorf("invalid header %q: want key:value", h)
		}
		callOpts = append(callOpts, request.Header(k, strings.TrimSpace(v)))
	}
	for _, p := range opts.params {
		k, v, ok := strings.Cut(p, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("invalid query parameter %q: want key=value", p)
		}
		callOpts = append(callOpts, request.Param(k, v))
	}
	if opts.data != "" {
		if !json.Valid([]byte(opts.data)) {
			return nil, errors.New("invalid JSON in --data")
		}
		callOpts = append(callOpts, request.JSON(json.RawMessage(opts.data)))
	}
	if opts.raw {
		callOpts = append(callOpts, request.Parse(false))
	}
	return callOpts, nil
}

func newLogger(w io.Writer, verbose bool) *logrus.Logger {
	l := logrus.New()
	l.Out = w
	l.Formatter = &logrus.TextFormatter{
		DisableColors:    !isTerminal(w),
		DisableTimestamp: true,
	}
	l.Level = logrus.WarnLevel
	if verbose {
		l.Level = logrus.DebugLevel
	}
	return l
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}
