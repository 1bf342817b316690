package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePlainText(t *testing.T) {
	t.Parallel()

	raw := []byte(strings.Join([]string{
		"From: Sender <sender@example.org>",
		"To: info@example.com",
		"Subject: Hi",
		"Content-Type: text/plain",
		"",
		"Hello there.",
	}, "\r\n"))

	msg, err := Parse(raw)
	require.NoError(t, err)

	assert.Equal(t, "sender@example.org", msg.From)
	assert.Equal(t, "Hi", msg.Subject)
	assert.Equal(t, "Hello there.", msg.TextBody)
	assert.Empty(t, msg.HTMLBody)
	assert.Empty(t, msg.Attachments)
}

func TestParseMissingSubjectAndContentType(t *testing.T) {
	t.Parallel()

	raw := []byte(strings.Join([]string{
		"From: sender@example.org",
		"To: info@example.com",
		"",
		"Body without headers.",
	}, "\r\n"))

	msg, err := Parse(raw)
	require.NoError(t, err)

	assert.Equal(t, DefaultSubject, msg.Subject)
	assert.Equal(t, "Body without headers.", msg.TextBody)
	assert.Empty(t, msg.HTMLBody)
}

func TestParseHTMLOnly(t *testing.T) {
	t.Parallel()

	raw := []byte(strings.Join([]string{
		"From: sender@example.org",
		"Subject: HTML",
		"Content-Type: text/html; charset=utf-8",
		"",
		"<p>Hello</p>",
	}, "\r\n"))

	msg, err := Parse(raw)
	require.NoError(t, err)

	assert.Empty(t, msg.TextBody)
	assert.Equal(t, "<p>Hello</p>", msg.HTMLBody)
}

func TestParseMultipartAlternative(t *testing.T) {
	t.Parallel()

	raw := []byte(strings.Join([]string{
		"From: sender@example.org",
		"Subject: Multipart",
		"Content-Type: multipart/alternative; boundary=b1",
		"",
		"--b1",
		"Content-Type: text/plain",
		"",
		"Plain body",
		"--b1",
		"Content-Type: text/html",
		"",
		"<p>HTML body</p>",
		"--b1--",
	}, "\r\n"))

	msg, err := Parse(raw)
	require.NoError(t, err)

	assert.Equal(t, "Plain body", msg.TextBody)
	assert.Equal(t, "<p>HTML body</p>", msg.HTMLBody)
	assert.Empty(t, msg.Attachments)
}

func TestParseAttachmentBase64(t *testing.T) {
	t.Parallel()

	raw := []byte(strings.Join([]string{
		"From: ext@example.org",
		"Subject: With attachment",
		"Content-Type: multipart/mixed; boundary=b2",
		"",
		"--b2",
		"Content-Type: text/plain",
		"",
		"See attached.",
		"--b2",
		"Content-Type: application/pdf; name=\"doc.pdf\"",
		"Content-Disposition: attachment; filename=\"doc.pdf\"",
		"Content-Transfer-Encoding: base64",
		"",
		"SGVsbG8gV29ybGQ=",
		"--b2--",
	}, "\r\n"))

	msg, err := Parse(raw)
	require.NoError(t, err)

	require.Len(t, msg.Attachments, 1)
	att := msg.Attachments[0]
	assert.Equal(t, "doc.pdf", att.FileName)
	assert.Equal(t, "application/pdf", att.ContentType)
	assert.Equal(t, []byte("Hello World"), att.Content)
	assert.Equal(t, "See attached.", msg.TextBody)
}

func TestParseAttachmentDefaultType(t *testing.T) {
	t.Parallel()

	raw := []byte(strings.Join([]string{
		"From: ext@example.org",
		"Subject: Binary",
		"Content-Type: multipart/mixed; boundary=b3",
		"",
		"--b3",
		"Content-Type: application/octet-stream",
		"Content-Disposition: attachment",
		"",
		"rawbytes",
		"--b3--",
	}, "\r\n"))

	msg, err := Parse(raw)
	require.NoError(t, err)

	require.Len(t, msg.Attachments, 1)
	att := msg.Attachments[0]
	// Имя не объявлено — подставляется заглушка
	assert.Equal(t, "attachment", att.FileName)
	assert.Equal(t, DefaultContentType, att.ContentType)
	assert.Equal(t, []byte("rawbytes"), att.Content)
}

func TestParseAttachmentMissingContentType(t *testing.T) {
	t.Parallel()

	raw := []byte(strings.Join([]string{
		"From: ext@example.org",
		"Subject: Raw binary",
		"Content-Type: multipart/mixed; boundary=b4",
		"",
		"--b4",
		"Content-Type: text/plain",
		"",
		"See attached.",
		"--b4",
		"Content-Disposition: attachment; filename=\"raw.bin\"",
		"",
		"rawbytes",
		"--b4--",
	}, "\r\n"))

	msg, err := Parse(raw)
	require.NoError(t, err)

	// Вложение без Content-Type не теряется, тип подставляется
	require.Len(t, msg.Attachments, 1)
	att := msg.Attachments[0]
	assert.Equal(t, "raw.bin", att.FileName)
	assert.Equal(t, DefaultContentType, att.ContentType)
	assert.Equal(t, []byte("rawbytes"), att.Content)
	assert.Equal(t, "See attached.", msg.TextBody)
}

func TestParsePartWithoutTypeBecomesTextBody(t *testing.T) {
	t.Parallel()

	raw := []byte(strings.Join([]string{
		"From: ext@example.org",
		"Subject: Bare part",
		"Content-Type: multipart/mixed; boundary=b5",
		"",
		"--b5",
		"",
		"Implicit plain text.",
		"--b5--",
	}, "\r\n"))

	msg, err := Parse(raw)
	require.NoError(t, err)

	assert.Equal(t, "Implicit plain text.", msg.TextBody)
	assert.Empty(t, msg.Attachments)
}

func TestParseTopLevelBase64Body(t *testing.T) {
	t.Parallel()

	raw := []byte(strings.Join([]string{
		"From: ext@example.org",
		"Subject: Encoded",
		"Content-Type: text/plain; charset=utf-8",
		"Content-Transfer-Encoding: base64",
		"",
		"SGVsbG8gV29ybGQ=",
	}, "\r\n"))

	msg, err := Parse(raw)
	require.NoError(t, err)

	assert.Equal(t, "Hello World", msg.TextBody)
}

func TestParseTopLevelQuotedPrintableBody(t *testing.T) {
	t.Parallel()

	raw := []byte(strings.Join([]string{
		"From: ext@example.org",
		"Subject: Encoded",
		"Content-Type: text/html; charset=utf-8",
		"Content-Transfer-Encoding: quoted-printable",
		"",
		"<p>caf=C3=A9</p>",
	}, "\r\n"))

	msg, err := Parse(raw)
	require.NoError(t, err)

	assert.Equal(t, "<p>café</p>", msg.HTMLBody)
}

func TestParseNestedMultipart(t *testing.T) {
	t.Parallel()

	raw := []byte(strings.Join([]string{
		"From: ext@example.org",
		"Subject: Nested",
		"Content-Type: multipart/mixed; boundary=outer",
		"",
		"--outer",
		"Content-Type: multipart/alternative; boundary=inner",
		"",
		"--inner",
		"Content-Type: text/plain",
		"",
		"Inner plain",
		"--inner",
		"Content-Type: text/html",
		"",
		"<p>Inner html</p>",
		"--inner--",
		"--outer",
		"Content-Type: text/csv; name=\"data.csv\"",
		"Content-Disposition: attachment; filename=\"data.csv\"",
		"",
		"a,b,c",
		"--outer--",
	}, "\r\n"))

	msg, err := Parse(raw)
	require.NoError(t, err)

	assert.Equal(t, "Inner plain", msg.TextBody)
	assert.Equal(t, "<p>Inner html</p>", msg.HTMLBody)
	require.Len(t, msg.Attachments, 1)
	assert.Equal(t, "data.csv", msg.Attachments[0].FileName)
}

func TestParseEncodedSubject(t *testing.T) {
	t.Parallel()

	raw := []byte(strings.Join([]string{
		"From: sender@example.org",
		"Subject: =?UTF-8?B?0J/RgNC40LLQtdGC?=",
		"Content-Type: text/plain",
		"",
		"Body",
	}, "\r\n"))

	msg, err := Parse(raw)
	require.NoError(t, err)

	assert.Equal(t, "Привет", msg.Subject)
}

func TestParseMalformedMessage(t *testing.T) {
	t.Parallel()

	_, err := Parse([]byte("not an rfc5322 message"))
	require.Error(t, err)
}

func TestParseMultipartMissingBoundary(t *testing.T) {
	t.Parallel()

	raw := []byte(strings.Join([]string{
		"From: sender@example.org",
		"Subject: Broken",
		"Content-Type: multipart/mixed",
		"",
		"body",
	}, "\r\n"))

	_, err := Parse(raw)
	require.Error(t, err)
}
