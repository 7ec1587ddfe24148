// Package cmsclient constructs clients for the headless CMS content API.
//
// It layers base URL normalization and environment loading on top of the
// resource interfaces and types defined in the cms package. Most
// applications import cmsclient to build a client and then use the returned
// cms.Client to reach Pages(), Forms(), Agenda(), Posts() and Structure().
//
// Quick start
//
//	ctx := context.Background()
//
//	cli, err := cmsclient.NewWithAPIKey(ctx, "https://cms.example.com/api", "secret")
//	if err != nil { log.Fatal(err) }
//
//	page, err := cli.Pages().Get(ctx, "home")
//
// From the environment
//
// NewFromEnv reads CMS_API_URL and CMS_API_KEY, falling back to the
// NEXT_PUBLIC_ prefixed variants. CMS_AUTH_MODE (api-key or bearer),
// CMS_TIMEOUT and CMS_DEBUG are optional:
//
//	cli, err := cmsclient.NewFromEnv(ctx, &cms.Config{Cache: cms.NewMemoryCache(128)})
//	if errors.Is(err, cms.ErrMissingEnv) { ... }
package cmsclient
