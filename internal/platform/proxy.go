// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

package platform

import (
	"net/url"

	"golang.org/x/net/http/httpproxy"
)

// ProxyForURL returns the proxy that requests to target are sent through,
// with any password redacted, or "" when they go direct. HTTP_PROXY,
// HTTPS_PROXY and NO_PROXY (either case) are read on every call.
func ProxyForURL(target string) string {
	parsed, err := url.Parse(target)
	if err != nil || parsed.Host == "" {
		return ""
	}

	proxy, err := httpproxy.FromEnvironment().ProxyFunc()(parsed)
	if err != nil || proxy == nil {
		return ""
	}

	return proxy.Redacted()
}
