/*
 * MIT License
 *
 * Copyright (c) 2025 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

package transport

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/pem"
	"io"
	"net"
	"os"
	"sync"

	"github/sabouaram/goirc/certificates"
)

type tcpTransport struct {
	opt Options

	mu   sync.Mutex
	conn net.Conn
}

func (t *tcpTransport) Connect(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.opt.ServerAddress == "" {
		return ErrorParamsEmpty.Error(nil)
	}

	dialer := &net.Dialer{}
	if t.opt.BindAddress != "" {
		local, err := net.ResolveTCPAddr("tcp", t.opt.BindAddress)
		if err != nil {
			return ErrorBind.Error(err)
		}
		dialer.LocalAddr = local
	}

	raw, err := dialer.DialContext(ctx, "tcp", t.opt.ServerAddress)
	if err != nil {
		return ErrorDial.Error(err)
	}

	if tc, ok := raw.(*net.TCPConn); ok {
		_ = tc.SetNoDelay(true)
	}

	if !t.opt.SSL {
		t.conn = raw
		return nil
	}

	tlsCfg, err := t.buildTLSConfig()
	if err != nil {
		_ = raw.Close()
		return err
	}

	tlsConn := tls.Client(raw, tlsCfg)
	if err := tlsConn.HandshakeContext(ctx); err != nil {
		_ = raw.Close()
		return ErrorTLSHandshake.Error(err)
	}

	t.conn = tlsConn
	return nil
}

// buildTLSConfig assembles a *tls.Config from Options via the certificates
// package: client certificate chain (with optional passphrase-protected
// private key, decrypted here since certs.ParsePair has no decryption path
// of its own), and an optional TrustDecider overriding certificate
// verification.
func (t *tcpTransport) buildTLSConfig() (*tls.Config, error) {
	tc := certificates.New()

	if t.opt.SSLKeyCertChain != "" && t.opt.SSLKey != "" {
		keyPEM, err := os.ReadFile(t.opt.SSLKey)
		if err != nil {
			return nil, ErrorKeyPairLoad.Error(err)
		}
		crtPEM, err := os.ReadFile(t.opt.SSLKeyCertChain)
		if err != nil {
			return nil, ErrorKeyPairLoad.Error(err)
		}

		if t.opt.SSLKeyPassword != "" {
			keyPEM, err = decryptPEMKey(keyPEM, t.opt.SSLKeyPassword)
			if err != nil {
				return nil, ErrorKeyDecrypt.Error(err)
			}
		}

		if e := tc.AddCertificatePairString(string(keyPEM), string(crtPEM)); e != nil {
			return nil, ErrorKeyPairLoad.Error(e)
		}
	}

	cnf := tc.TlsConfig(serverNameOf(t.opt.ServerAddress))

	if t.opt.TrustDecider != nil {
		decide := t.opt.TrustDecider
		cnf.InsecureSkipVerify = true
		cnf.VerifyPeerCertificate = func(rawCerts [][]byte, verifiedChains [][]*x509.Certificate) error {
			return decide(rawCerts, verifiedChains)
		}
	}

	return cnf, nil
}

// decryptPEMKey decrypts a passphrase-protected PEM private key block. The
// PKCS#1 encrypted-PEM format it handles is deprecated by the standard
// library in favor of PKCS#8, but it remains what IRC networks' self-signed
// deployments commonly hand out, so SSL_KEY_PASSWORD still needs to honor it.
func decryptPEMKey(keyPEM []byte, password string) ([]byte, error) {
	block, _ := pem.Decode(keyPEM)
	if block == nil {
		return nil, ErrorKeyDecrypt.Error(nil)
	}

	//nolint:staticcheck // SA1019: encrypted PKCS#1 PEM has no replacement API.
	if !x509.IsEncryptedPEMBlock(block) {
		return keyPEM, nil
	}

	//nolint:staticcheck // SA1019: see above.
	der, err := x509.DecryptPEMBlock(block, []byte(password))
	if err != nil {
		return nil, err
	}

	return pem.EncodeToMemory(&pem.Block{Type: block.Type, Bytes: der}), nil
}

func serverNameOf(addr string) string {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		return addr
	}
	return host
}

func (t *tcpTransport) Write(b []byte) error {
	t.mu.Lock()
	conn := t.conn
	t.mu.Unlock()

	if conn == nil {
		return ErrorNotConnected.Error(nil)
	}

	if _, err := conn.Write(b); err != nil {
		return ErrorWrite.Error(err)
	}
	return nil
}

func (t *tcpTransport) Reader() io.Reader {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.conn
}

func (t *tcpTransport) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.conn == nil {
		return nil
	}
	err := t.conn.Close()
	t.conn = nil
	return err
}

func (t *tcpTransport) RemoteAddr() string {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.conn == nil {
		return ""
	}
	return t.conn.RemoteAddr().String()
}
