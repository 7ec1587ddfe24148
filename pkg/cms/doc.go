// Package cms provides types, interfaces, and helpers for working with a
// headless content-management API.
//
// # Overview
//
// The cms package defines the content types (Page, PageComponent,
// FormDefinition, AgendaEvent, Post) and the interfaces of the
// resource-oriented clients (PagesClient, FormsClient, AgendaClient,
// PostsClient, StructureClient). A concrete implementation is provided by
// the cmsclient package, which wires configuration, transport, and
// authentication. Most consumers import cmsclient to construct a client and
// then work with the interfaces exposed here.
//
// Getting a client
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/PebblesProgramming/miso-headless-cms-core/pkg/cms"
//	  "github.com/PebblesProgramming/miso-headless-cms-core/pkg/cmsclient"
//	)
//
//	func example() {
//	  ctx := context.Background()
//	  cli, err := cmsclient.New(ctx, &cms.Config{BaseURL: "https://cms.example.com/api", APIKey: "key"})
//	  if err != nil { log.Fatal(err) }
//
//	  page, err := cli.Pages().Get(ctx, "home")
//	  if err != nil { log.Fatal(err) }
//	  _ = page
//	}
//
// # Form values
//
// Form submissions carry FieldValues, a map of FieldValue. A FieldValue is
// either a string or a boolean; checkbox fields use booleans and every other
// field kind uses strings. Numbers and dates stay textual until the server
// receives them.
//
// # Errors
//
// Non-2xx responses are returned as *APIError. Use IsNotFound,
// IsUnauthorized and IsValidationError to branch on the status, or
// errors.As to reach the raw body.
//
// # Caching
//
// GET responses can be cached by setting Config.Cache. MemoryCache,
// NATSKVCache, RedisCache, NoOpCache and CacheChain implement Cache;
// NewCacheFromConfig builds one from a CacheConfig.
package cms
