// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// ErrNoCredential reports that neither the token header nor a matching
// cookie carried a credential. It is logged by the authentication gate; the
// wire response stays an opaque 401.
var ErrNoCredential = errors.New("no credential presented")

// ErrGuardedLoginPath reports that the configured login path is subject to
// authentication under the configured access rules. Nobody without a token
// could ever log in, so construction fails instead of starting a gateway
// that locks everyone out.
var ErrGuardedLoginPath = errors.New("login path is not covered by an allow rule")
