// Package form validates and submits CMS forms.
//
// Validate is a pure function mirroring the server's rule set: for each
// field it reports the first failing rule, in the order required, format,
// length, pattern. Session wraps a form definition in a small state
// machine (loading, idle, submitting, success, error) that presentation
// code drives with SetField and Submit and observes through Snapshot and
// the OnChange, OnSuccess, OnError and OnLoadError callbacks.
//
//	session, err := form.Open(ctx,
//		form.WithSource("contact", client.Forms()),
//		form.OnSuccess(func(resp *cms.FormSubmitResponse) { log.Println(resp.Message) }),
//	)
//	if err != nil { ... }
//	defer session.Close()
//
//	_ = session.Wait(ctx)
//	_ = session.SetField("email", cms.StringValue("jane@example.com"))
//	if err := session.Submit(); errors.Is(err, form.ErrInvalid) {
//		fmt.Println(session.Snapshot().Errors)
//	}
package form
