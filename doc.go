// Package gourdianauth provides a JWT-based session token core: issuance,
// verification, and refresh of signed access/refresh token pairs representing
// an authenticated principal and its granted authorities.
//
// Features:
// - Paired access and refresh token issuance with independent expiry policy
// - Verification of presented tokens into a trusted Principal
// - Expiry-tolerant claim extraction to drive refresh flows
// - Refresh exchange minting a fresh access token without credential checks
// - Symmetric HMAC signing (HS256, HS384, HS512) with a base64-encoded secret
// - Optional refresh token persistence (in-memory or Redis)
package gourdianauth
