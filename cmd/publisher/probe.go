/*
Copyright (c) 2025 Odd Kin <oddkin@oddkin.co>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in all
copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
SOFTWARE.
*/

package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/oddkinco/registry-publisher/internal/credentials"
)

func newProbeCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "probe",
		Short: "Show which registries a publish run would target",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := opts.load(cmd.Context())
			if err != nil {
				return err
			}
			return s.printEligibility(cmd.OutOrStdout())
		},
	}
}

// printEligibility lists each registry with the variables its credential is
// read from. Only the username is printed.
func (s *session) printEligibility(w io.Writer) error {
	creds := credentials.Probe(s.env, s.credentialPairs())
	for _, adapter := range s.adapters {
		pair := adapter.Credentials()
		cred := creds[adapter.ID()]

		status := "skip: credentials absent"
		if cred != nil && adapter.Supports(cred) {
			status = "publish as " + cred.Username
		}
		if _, err := fmt.Fprintf(w, "%-8s %-40s %s/%s  %s\n",
			adapter.ID(), adapter.Target().EndpointURL, pair.UsernameVar, pair.SecretVar, status); err != nil {
			return err
		}
	}
	return nil
}
