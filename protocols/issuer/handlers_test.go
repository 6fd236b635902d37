package issuer

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/goliatone/go-admin-toolbox/core"
	"github.com/goliatone/go-admin-toolbox/message"
	gocmd "github.com/goliatone/go-command"
	goerrors "github.com/goliatone/go-errors"
)

const (
	readyConnectionID   = "3fa85f64-5717-4562-b3fc-2c963f66afa6"
	pendingConnectionID = "7c9e6679-7425-40de-944b-e07fc1f90ae7"
	missingConnectionID = "9b2d1c1e-0d7e-4e53-bb0a-2f6a1d7d9a10"
)

type stubConnections struct {
	records map[string]core.ConnectionRecord
	err     error
}

func (s stubConnections) RetrieveByID(_ context.Context, id string) (core.ConnectionRecord, error) {
	if s.err != nil {
		return core.ConnectionRecord{}, s.err
	}
	record, ok := s.records[id]
	if !ok {
		return core.ConnectionRecord{}, core.NotFoundError(core.ErrConnectionNotFound, "connection not found")
	}
	return record, nil
}

func (s stubConnections) Query(context.Context, core.Filter, core.Filter) ([]core.ConnectionRecord, error) {
	return nil, nil
}

func newConnections() stubConnections {
	return stubConnections{records: map[string]core.ConnectionRecord{
		readyConnectionID:   {ConnectionID: readyConnectionID, State: core.ConnectionStateActive},
		pendingConnectionID: {ConnectionID: pendingConnectionID, State: core.ConnectionStateRequest},
	}}
}

type offerMessage struct {
	message.Header
}

func (offerMessage) Type() string { return IssueCredentialProtocol + "/offer-credential" }

type stubCredentialManager struct {
	prepare   func(context.Context, string, CredentialProposal, SendOptions) (core.CredentialExchangeRecord, core.Message, error)
	proposals []CredentialProposal
	options   []SendOptions
}

func (s *stubCredentialManager) PrepareSend(
	ctx context.Context,
	connectionID string,
	proposal CredentialProposal,
	opts SendOptions,
) (core.CredentialExchangeRecord, core.Message, error) {
	s.proposals = append(s.proposals, proposal)
	s.options = append(s.options, opts)
	return s.prepare(ctx, connectionID, proposal, opts)
}

type stubPresentationManager struct {
	requests []PresentationRequest
	err      error
}

func (s *stubPresentationManager) CreateExchangeForRequest(
	_ context.Context,
	connectionID string,
	request PresentationRequest,
) (core.PresentationExchangeRecord, error) {
	s.requests = append(s.requests, request)
	if s.err != nil {
		return core.PresentationExchangeRecord{}, s.err
	}
	return core.PresentationExchangeRecord{
		PresentationExchangeID: "px_1",
		ConnectionID:           connectionID,
		Role:                   core.RoleVerifier,
		State:                  "request_sent",
	}, nil
}

type sentMessage struct {
	msg          core.Message
	connectionID string
}

type captureResponder struct {
	sent    []sentMessage
	replies []core.Message
}

func (r *captureResponder) Send(_ context.Context, msg core.Message, connectionID string) error {
	r.sent = append(r.sent, sentMessage{msg: msg, connectionID: connectionID})
	return nil
}

func (r *captureResponder) SendReply(_ context.Context, msg core.Message) error {
	r.replies = append(r.replies, msg)
	return nil
}

func requestContext(responder core.Responder) context.Context {
	return core.ContextWithRequest(context.Background(), core.RequestContext{
		ConnectionID: "conn_admin",
		Capabilities: []string{core.CapabilityAdmin},
		Responder:    responder,
	})
}

func decodeSendCred(t *testing.T, connectionID string) SendCred {
	t.Helper()
	raw := `{"@type":"` + TypeSendCredential + `","@id":"send-1","connection_id":"` + connectionID + `",` +
		`"comment":"degree","cred_def_id":"WgWxqztrNooG92RXvxSTWv:3:CL:20:tag",` +
		`"credential_proposal":{"attributes":[{"name":"degree","value":"MSc"}]}}`
	msg, err := message.Decode[SendCred]([]byte(raw))
	if err != nil {
		t.Fatalf("decode send-credential: %v", err)
	}
	return msg
}

func decodeRequestPres(t *testing.T, connectionID string, nonce string) RequestPres {
	t.Helper()
	nonceField := ""
	if nonce != "" {
		nonceField = `"nonce":"` + nonce + `",`
	}
	raw := `{"@type":"` + TypeRequestPresentation + `","@id":"pres-1","connection_id":"` + connectionID + `",` +
		`"proof_request":{` + nonceField + `"requested_attributes":{"attr_0":{"name":"degree"}},"requested_predicates":{}}}`
	msg, err := message.Decode[RequestPres]([]byte(raw))
	if err != nil {
		t.Fatalf("decode request-presentation: %v", err)
	}
	return msg
}

func assertSingleProblem(t *testing.T, responder *captureResponder, explain string, thread string) {
	t.Helper()
	if len(responder.sent) != 0 {
		t.Fatalf("nothing may be sent to the peer, got %d", len(responder.sent))
	}
	if len(responder.replies) != 1 {
		t.Fatalf("expected exactly one reply, got %d", len(responder.replies))
	}
	report, ok := responder.replies[0].(message.ProblemReport)
	if !ok {
		t.Fatalf("expected problem report, got %T", responder.replies[0])
	}
	if report.ExplainLongText != explain || report.WhoRetries != message.WhoRetriesNone {
		t.Fatalf("unexpected problem report: %#v", report)
	}
	if report.ThreadID() != thread {
		t.Fatalf("expected report on thread %q, got %q", thread, report.ThreadID())
	}
}

func TestSendCred_Validation(t *testing.T) {
	_, err := message.Decode[SendCred]([]byte(`{"@type":"` + TypeSendCredential + `","connection_id":"not-a-uuid","credential_proposal":{"attributes":[]}}`))
	var rich *goerrors.Error
	if !goerrors.As(err, &rich) {
		t.Fatalf("expected validation envelope, got %v", err)
	}
	fields := map[string]bool{}
	for _, fe := range rich.AllValidationErrors() {
		fields[fe.Field] = true
	}
	if !fields["connection_id"] || !fields["credential_proposal.attributes"] {
		t.Fatalf("expected all violations reported, got %#v", rich.AllValidationErrors())
	}
}

func TestSendCredCommand_OffersOverReadyConnection(t *testing.T) {
	manager := &stubCredentialManager{
		prepare: func(_ context.Context, connectionID string, _ CredentialProposal, _ SendOptions) (core.CredentialExchangeRecord, core.Message, error) {
			return core.CredentialExchangeRecord{
				CredentialExchangeID: "cx_1",
				ConnectionID:         connectionID,
				Role:                 core.RoleIssuer,
				State:                "offer_sent",
			}, offerMessage{Header: message.NewHeader(IssueCredentialProtocol + "/offer-credential")}, nil
		},
	}
	responder := &captureResponder{}
	collector := gocmd.NewResult[IssuerCredExchange]()
	ctx := gocmd.ContextWithResult(requestContext(responder), collector)

	msg := decodeSendCred(t, readyConnectionID)
	if err := NewSendCredCommand(newConnections(), manager, nil).Execute(ctx, msg); err != nil {
		t.Fatalf("execute: %v", err)
	}

	if len(manager.proposals) != 1 {
		t.Fatalf("expected one manager call, got %d", len(manager.proposals))
	}
	proposal := manager.proposals[0]
	if proposal.Comment != "degree" || proposal.CredentialProposal == nil {
		t.Fatalf("unexpected proposal: %#v", proposal)
	}
	if proposal.CredentialProposal.MsgType != TypeCredentialPreview {
		t.Fatalf("expected preview type default, got %q", proposal.CredentialProposal.MsgType)
	}
	tags := proposal.Present()
	if len(tags) != 1 || tags["cred_def_id"] != "WgWxqztrNooG92RXvxSTWv:3:CL:20:tag" {
		t.Fatalf("only present tags may be copied, got %#v", tags)
	}

	if len(responder.sent) != 1 || responder.sent[0].connectionID != readyConnectionID {
		t.Fatalf("expected offer sent to the record's connection, got %#v", responder.sent)
	}
	if len(responder.replies) != 1 {
		t.Fatalf("expected one reply, got %d", len(responder.replies))
	}
	reply, ok := responder.replies[0].(IssuerCredExchange)
	if !ok {
		t.Fatalf("expected IssuerCredExchange reply, got %T", responder.replies[0])
	}
	if reply.CredentialExchangeID != "cx_1" || reply.Envelope().ThreadID() != "send-1" {
		t.Fatalf("unexpected reply: %#v", reply)
	}
	if _, ok := collector.Load(); !ok {
		t.Fatalf("expected stored result")
	}

	raw, err := json.Marshal(reply)
	if err != nil {
		t.Fatalf("marshal reply: %v", err)
	}
	payload := map[string]any{}
	if err := json.Unmarshal(raw, &payload); err != nil {
		t.Fatalf("unmarshal reply: %v", err)
	}
	if payload["@type"] != TypeCredentialExchange || payload["credential_exchange_id"] != "cx_1" {
		t.Fatalf("expected flattened exchange record, got %s", raw)
	}
}

func TestSendCredCommand_ConnectionProblems(t *testing.T) {
	cases := []struct {
		name         string
		connectionID string
		explain      string
	}{
		{name: "missing", connectionID: missingConnectionID, explain: "Connection not found."},
		{name: "not ready", connectionID: pendingConnectionID, explain: "Connection invalid."},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			manager := &stubCredentialManager{}
			responder := &captureResponder{}

			msg := decodeSendCred(t, tc.connectionID)
			if err := NewSendCredCommand(newConnections(), manager, nil).Execute(requestContext(responder), msg); err != nil {
				t.Fatalf("problems are reported, not returned: %v", err)
			}
			if len(manager.proposals) != 0 {
				t.Fatalf("manager must not be invoked")
			}
			assertSingleProblem(t, responder, tc.explain, "send-1")
		})
	}
}

func TestSendCredCommand_StoreFailurePropagates(t *testing.T) {
	boom := errors.New("wallet closed")
	responder := &captureResponder{}

	err := NewSendCredCommand(stubConnections{err: boom}, &stubCredentialManager{}, nil).
		Execute(requestContext(responder), decodeSendCred(t, readyConnectionID))
	if !errors.Is(err, boom) {
		t.Fatalf("expected store failure, got %v", err)
	}
	if len(responder.replies) != 0 {
		t.Fatalf("no reply expected on store failure")
	}
}

func TestSendCredCommand_NilOfferIsInternal(t *testing.T) {
	manager := &stubCredentialManager{
		prepare: func(context.Context, string, CredentialProposal, SendOptions) (core.CredentialExchangeRecord, core.Message, error) {
			return core.CredentialExchangeRecord{CredentialExchangeID: "cx_1"}, nil, nil
		},
	}
	err := NewSendCredCommand(newConnections(), manager, nil).
		Execute(requestContext(&captureResponder{}), decodeSendCred(t, readyConnectionID))
	var rich *goerrors.Error
	if !goerrors.As(err, &rich) || rich.TextCode != core.ErrorInternal {
		t.Fatalf("expected internal error, got %v", err)
	}
}

func TestRequestPresCommand_GeneratesMissingNonce(t *testing.T) {
	manager := &stubPresentationManager{}
	responder := &captureResponder{}
	cmd := NewRequestPresCommand(newConnections(), manager, nil)
	cmd.nonce = func() string { return "1234567890" }

	if err := cmd.Execute(requestContext(responder), decodeRequestPres(t, readyConnectionID, "")); err != nil {
		t.Fatalf("execute: %v", err)
	}

	if len(manager.requests) != 1 {
		t.Fatalf("expected one manager call, got %d", len(manager.requests))
	}
	proof, err := manager.requests[0].ProofRequest()
	if err != nil {
		t.Fatalf("decode attached proof request: %v", err)
	}
	if proof.Nonce != "1234567890" {
		t.Fatalf("expected generated nonce, got %q", proof.Nonce)
	}
	if proof.Name != "Proof request" || proof.Version != "1.0" {
		t.Fatalf("expected proof request defaults, got %q %q", proof.Name, proof.Version)
	}

	if len(responder.sent) != 1 || responder.sent[0].connectionID != readyConnectionID {
		t.Fatalf("expected presentation request sent to connection, got %#v", responder.sent)
	}
	if _, ok := responder.sent[0].msg.(PresentationRequest); !ok {
		t.Fatalf("expected PresentationRequest, got %T", responder.sent[0].msg)
	}
	reply, ok := responder.replies[0].(IssuerPresExchange)
	if !ok {
		t.Fatalf("expected IssuerPresExchange reply, got %T", responder.replies[0])
	}
	if reply.PresentationExchangeID != "px_1" || reply.Envelope().ThreadID() != "pres-1" {
		t.Fatalf("unexpected reply: %#v", reply)
	}
}

func TestRequestPresCommand_KeepsProvidedNonce(t *testing.T) {
	manager := &stubPresentationManager{}
	cmd := NewRequestPresCommand(newConnections(), manager, nil)
	cmd.nonce = func() string {
		t.Fatalf("nonce source must not be called when a nonce is provided")
		return ""
	}

	if err := cmd.Execute(requestContext(&captureResponder{}), decodeRequestPres(t, readyConnectionID, "42")); err != nil {
		t.Fatalf("execute: %v", err)
	}
	proof, err := manager.requests[0].ProofRequest()
	if err != nil {
		t.Fatalf("decode attached proof request: %v", err)
	}
	if proof.Nonce != "42" {
		t.Fatalf("expected provided nonce, got %q", proof.Nonce)
	}
}

func TestRequestPresCommand_ConnectionProblems(t *testing.T) {
	for _, connectionID := range []string{missingConnectionID, pendingConnectionID} {
		manager := &stubPresentationManager{}
		responder := &captureResponder{}

		if err := NewRequestPresCommand(newConnections(), manager, nil).
			Execute(requestContext(responder), decodeRequestPres(t, connectionID, "")); err != nil {
			t.Fatalf("problems are reported, not returned: %v", err)
		}
		if len(manager.requests) != 0 {
			t.Fatalf("manager must not be invoked for %s", connectionID)
		}
		explain := "Connection not found."
		if connectionID == pendingConnectionID {
			explain = "Connection invalid."
		}
		assertSingleProblem(t, responder, explain, "pres-1")
	}
}

func TestCommands_ReportConnectionProblemsWithoutManagers(t *testing.T) {
	responder := &captureResponder{}
	if err := NewSendCredCommand(newConnections(), nil, nil).
		Execute(requestContext(responder), decodeSendCred(t, missingConnectionID)); err != nil {
		t.Fatalf("send-credential: problems are reported, not returned: %v", err)
	}
	assertSingleProblem(t, responder, "Connection not found.", "send-1")

	responder = &captureResponder{}
	if err := NewRequestPresCommand(newConnections(), nil, nil).
		Execute(requestContext(responder), decodeRequestPres(t, pendingConnectionID, "")); err != nil {
		t.Fatalf("request-presentation: problems are reported, not returned: %v", err)
	}
	assertSingleProblem(t, responder, "Connection invalid.", "pres-1")
}

func TestCommands_MissingManagerOnReadyConnectionIsInternal(t *testing.T) {
	err := NewSendCredCommand(newConnections(), nil, nil).
		Execute(requestContext(&captureResponder{}), decodeSendCred(t, readyConnectionID))
	var rich *goerrors.Error
	if !goerrors.As(err, &rich) || rich.TextCode != core.ErrorInternal {
		t.Fatalf("expected internal error for send-credential, got %v", err)
	}

	err = NewRequestPresCommand(newConnections(), nil, nil).
		Execute(requestContext(&captureResponder{}), decodeRequestPres(t, readyConnectionID, "7"))
	if !goerrors.As(err, &rich) || rich.TextCode != core.ErrorInternal {
		t.Fatalf("expected internal error for request-presentation, got %v", err)
	}
}

func TestRequestPres_RejectsNonNumericNonce(t *testing.T) {
	raw := `{"@type":"` + TypeRequestPresentation + `","connection_id":"` + readyConnectionID + `",` +
		`"proof_request":{"nonce":"abc","requested_attributes":{},"requested_predicates":{}}}`
	if _, err := message.Decode[RequestPres]([]byte(raw)); err == nil {
		t.Fatalf("expected nonce format violation")
	}
}

type captureCredentialStore struct {
	filters []core.Filter
	records []core.CredentialExchangeRecord
}

func (s *captureCredentialStore) Query(_ context.Context, _ core.Filter, postFilter core.Filter) ([]core.CredentialExchangeRecord, error) {
	s.filters = append(s.filters, postFilter)
	return s.records, nil
}

type capturePresentationStore struct {
	filters []core.Filter
}

func (s *capturePresentationStore) Query(_ context.Context, _ core.Filter, postFilter core.Filter) ([]core.PresentationExchangeRecord, error) {
	s.filters = append(s.filters, postFilter)
	return nil, nil
}

func TestCredGetListCommand_ForcesIssuerRole(t *testing.T) {
	store := &captureCredentialStore{records: []core.CredentialExchangeRecord{{CredentialExchangeID: "cx_1", Role: core.RoleIssuer}}}
	responder := &captureResponder{}

	msg, err := message.Decode[CredGetList]([]byte(`{"@type":"` + TypeCredentialsGetList + `","@id":"creds-1","cred_def_id":"def-1","schema_id":""}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if err := NewCredGetListCommand(store).Execute(requestContext(responder), msg); err != nil {
		t.Fatalf("execute: %v", err)
	}

	filter := store.filters[0]
	if filter["role"] != core.RoleIssuer || filter["credential_definition_id"] != "def-1" {
		t.Fatalf("unexpected filter: %#v", filter)
	}
	if value, ok := filter["schema_id"]; !ok || value != "" {
		t.Fatalf("present empty schema_id must constrain, got %#v", filter)
	}
	if _, ok := filter["connection_id"]; ok {
		t.Fatalf("absent connection_id must not constrain")
	}

	list, ok := responder.replies[0].(CredList)
	if !ok || len(list.Results) != 1 || list.ThreadID() != "creds-1" {
		t.Fatalf("unexpected list reply: %#v", responder.replies[0])
	}
}

func TestCredGetList_RoleCannotBeOverridden(t *testing.T) {
	msg, err := message.Decode[CredGetList]([]byte(`{"@type":"` + TypeCredentialsGetList + `","role":"holder"}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if msg.Filter()["role"] != core.RoleIssuer {
		t.Fatalf("expected forced issuer role, got %#v", msg.Filter())
	}
}

func TestPresGetListCommand_ForcesVerifierRole(t *testing.T) {
	store := &capturePresentationStore{}
	responder := &captureResponder{}
	verified := "true"
	msg := PresGetList{Header: message.NewHeader(TypePresentationsGetList), Verified: &verified}

	if err := NewPresGetListCommand(store).Execute(requestContext(responder), msg); err != nil {
		t.Fatalf("execute: %v", err)
	}
	filter := store.filters[0]
	if filter["role"] != core.RoleVerifier || filter["verified"] != "true" || len(filter) != 2 {
		t.Fatalf("unexpected filter: %#v", filter)
	}

	raw, err := json.Marshal(responder.replies[0])
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	payload := map[string]any{}
	if err := json.Unmarshal(raw, &payload); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if results, ok := payload["results"].([]any); !ok || len(results) != 0 {
		t.Fatalf("expected empty results array, got %s", raw)
	}
}

func TestNewNonce_IsDecimal(t *testing.T) {
	first := NewNonce()
	if !nonceFormat.MatchString(first) {
		t.Fatalf("expected decimal nonce, got %q", first)
	}
	if first == NewNonce() {
		t.Fatalf("expected distinct nonces")
	}
}

func TestEntries_Catalogue(t *testing.T) {
	entries := Entries(Dependencies{})
	if len(entries) != 8 {
		t.Fatalf("expected 8 entries, got %d", len(entries))
	}
	outbound := 0
	for _, entry := range entries {
		if entry.Outbound() {
			outbound++
		}
	}
	if outbound != 4 {
		t.Fatalf("expected 4 outbound entries, got %d", outbound)
	}
}
