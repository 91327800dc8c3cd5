/*
 * MIT License
 *
 * Copyright (c) 2020 Nicolas JUHEL
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

package certificates

import (
	"crypto/tls"
	"io"

	tlsaut "github/sabouaram/goirc/certificates/auth"
	tlscas "github/sabouaram/goirc/certificates/ca"
	tlscpr "github/sabouaram/goirc/certificates/cipher"
	tlscrt "github/sabouaram/goirc/certificates/certs"
	tlscrv "github/sabouaram/goirc/certificates/curves"
	tlsvrs "github/sabouaram/goirc/certificates/tlsversion"
)

// config is the TLSConfig implementation. Every collection field holds the
// domain wrapper type (tlscas.Cert, tlscrt.Cert, ...) rather than the raw
// stdlib type, so each entry keeps its own marshalling/parsing behavior;
// TlsConfig flattens them into a *tls.Config on demand.
type config struct {
	rand io.Reader

	cert       []tlscrt.Cert
	cipherList []tlscpr.Cipher
	curveList  []tlscrv.Curves
	caRoot     []tlscas.Cert
	clientCA   []tlscas.Cert
	clientAuth tlsaut.ClientAuth

	tlsMinVersion tlsvrs.Version
	tlsMaxVersion tlsvrs.Version

	dynSizingDisabled     bool
	ticketSessionDisabled bool
}

func (c *config) RegisterRand(rand io.Reader) {
	c.rand = rand
}

func (c *config) SetVersionMin(v tlsvrs.Version) {
	c.tlsMinVersion = v
}

func (c *config) GetVersionMin() tlsvrs.Version {
	return c.tlsMinVersion
}

func (c *config) SetVersionMax(v tlsvrs.Version) {
	c.tlsMaxVersion = v
}

func (c *config) GetVersionMax() tlsvrs.Version {
	return c.tlsMaxVersion
}

func (c *config) SetCipherList(list []tlscpr.Cipher) {
	c.cipherList = make([]tlscpr.Cipher, 0)
	c.AddCiphers(list...)
}

func (c *config) AddCiphers(list ...tlscpr.Cipher) {
	c.cipherList = append(c.cipherList, list...)
}

func (c *config) GetCiphers() []tlscpr.Cipher {
	res := make([]tlscpr.Cipher, 0)

	for _, i := range c.cipherList {
		if tlscpr.Check(i.Uint16()) {
			res = append(res, i)
		}
	}

	return res
}

func (c *config) SetDynamicSizingDisabled(flag bool) {
	c.dynSizingDisabled = flag
}

func (c *config) SetSessionTicketDisabled(flag bool) {
	c.ticketSessionDisabled = flag
}

func (c *config) Clone() TLSConfig {
	return &config{
		rand:                  c.rand,
		cert:                  append(make([]tlscrt.Cert, 0), c.cert...),
		cipherList:            append(make([]tlscpr.Cipher, 0), c.cipherList...),
		curveList:             append(make([]tlscrv.Curves, 0), c.curveList...),
		caRoot:                append(make([]tlscas.Cert, 0), c.caRoot...),
		clientCA:              append(make([]tlscas.Cert, 0), c.clientCA...),
		clientAuth:            c.clientAuth,
		tlsMinVersion:         c.tlsMinVersion,
		tlsMaxVersion:         c.tlsMaxVersion,
		dynSizingDisabled:     c.dynSizingDisabled,
		ticketSessionDisabled: c.ticketSessionDisabled,
	}
}

func (c *config) Config() *Config {
	return &Config{
		CurveList:            append(make([]tlscrv.Curves, 0), c.curveList...),
		CipherList:           append(make([]tlscpr.Cipher, 0), c.cipherList...),
		RootCA:               append(make([]tlscas.Cert, 0), c.caRoot...),
		ClientCA:             append(make([]tlscas.Cert, 0), c.clientCA...),
		VersionMin:           c.tlsMinVersion,
		VersionMax:           c.tlsMaxVersion,
		AuthClient:           c.clientAuth,
		DynamicSizingDisable: c.dynSizingDisabled,
		SessionTicketDisable: c.ticketSessionDisabled,
	}
}

// TLS is an alias of TlsConfig kept for call sites that prefer the
// all-caps spelling of the acronym.
func (c *config) TLS(serverName string) *tls.Config {
	return c.TlsConfig(serverName)
}

func (c *config) TlsConfig(serverName string) *tls.Config {
	/* #nosec */
	cnf := &tls.Config{
		InsecureSkipVerify: false,
		Rand:               c.rand,
	}

	if serverName != "" {
		cnf.ServerName = serverName
	}

	if c.ticketSessionDisabled {
		cnf.SessionTicketsDisabled = true
	}

	if c.dynSizingDisabled {
		cnf.DynamicRecordSizingDisabled = true
	}

	if c.tlsMinVersion != tlsvrs.VersionUnknown {
		cnf.MinVersion = c.tlsMinVersion.TLS()
	}

	if c.tlsMaxVersion != tlsvrs.VersionUnknown {
		cnf.MaxVersion = c.tlsMaxVersion.TLS()
	}

	if len(c.cipherList) > 0 {
		cnf.PreferServerCipherSuites = true
		cnf.CipherSuites = c.cloneCipherList()
	}

	if len(c.curveList) > 0 {
		cnf.CurvePreferences = c.cloneCurveList()
	}

	if pool := c.GetRootCAPool(); len(c.caRoot) > 0 {
		cnf.RootCAs = pool
	}

	if certs := c.cloneCertificates(); len(certs) > 0 {
		cnf.Certificates = certs
	}

	if c.clientAuth != tlsaut.NoClientCert {
		cnf.ClientAuth = c.clientAuth.TLS()
		if pool := c.GetClientCAPool(); len(c.clientCA) > 0 {
			cnf.ClientCAs = pool
		}
	}

	return cnf
}

func (c *config) cloneCipherList() []uint16 {
	res := make([]uint16, 0, len(c.cipherList))
	for _, v := range c.cipherList {
		res = append(res, v.TLS())
	}
	return res
}

func (c *config) cloneCurveList() []tls.CurveID {
	res := make([]tls.CurveID, 0, len(c.curveList))
	for _, v := range c.curveList {
		res = append(res, v.TLS())
	}
	return res
}

func (c *config) cloneCertificates() []tls.Certificate {
	return c.GetCertificatePair()
}
