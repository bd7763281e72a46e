package main

import (
	"fmt"
	"io"
	"text/tabwriter"
)

func printResult(out io.Writer, v interface{}) error {
	if output == "json" {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	return printTable(out, v)
}

func printTable(out io.Writer, v interface{}) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	switch data := v.(type) {
	case TokenRow:
		fmt.Fprintf(w, "Access Token:\t%s\n", data.AccessToken)
		if data.RefreshToken != "" {
			fmt.Fprintf(w, "Refresh Token:\t%s\n", data.RefreshToken)
		}
		fmt.Fprintf(w, "Expires In:\t%ds\n", data.ExpiresIn)
		if data.OpenID != "" {
			fmt.Fprintf(w, "Open ID:\t%s\n", data.OpenID)
		}
		if data.Scope != "" {
			fmt.Fprintf(w, "Scope:\t%s\n", data.Scope)
		}
	case SMSTokenRow:
		fmt.Fprintf(w, "Token:\t%s\n", data.Token)
	case SendRow:
		fmt.Fprintf(w, "Identifier:\t%s\n", data.Identifier)
		if data.CreateAt != "" {
			fmt.Fprintf(w, "Created:\t%s\n", data.CreateAt)
		}
	case RandcodeRow:
		fmt.Fprintf(w, "Identifier:\t%s\n", data.Identifier)
		fmt.Fprintf(w, "Code:\t%s\n", data.RandCode)
		fmt.Fprintf(w, "Received:\t%s\n", data.ReceivedAt)
	case SignRow:
		for _, k := range sortedKeys(data.Params) {
			fmt.Fprintf(w, "%s:\t%s\n", k, data.Params[k])
		}
		fmt.Fprintf(w, "Canonical:\t%s\n", data.Canonical)
		fmt.Fprintf(w, "HMAC-SHA1:\t%s\n", data.Hex)
		fmt.Fprintf(w, "Signature:\t%s\n", data.Base64)
	case []MetricRow:
		if len(data) == 0 {
			fmt.Fprintln(w, "No metrics.")
			break
		}
		fmt.Fprintln(w, "METRIC\tVALUE")
		for _, m := range data {
			fmt.Fprintf(w, "%s\t%s\n", m.Name, m.Value)
		}
	default:
		return json.NewEncoder(out).Encode(v)
	}
	return w.Flush()
}
