package detect

import (
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"

	"github.com/aclindsa/ofxgo"
)

// Charge is a single debit parsed from a bank export. Amounts are positive.
type Charge struct {
	Date   time.Time
	Payee  string
	Amount float64
}

// Parser reads OFX/QFX bank exports into charges.
type Parser struct{}

// NewParser creates a new OFX parser.
func NewParser() *Parser {
	return &Parser{}
}

var (
	severityRegex = regexp.MustCompile(`(?i)<SEVERITY>(Info|Warn|Error)</SEVERITY>`)
	// SGML-style OFX files sometimes drop the closing angle bracket on a tag
	// that ends a line.
	tagFixRegex = regexp.MustCompile(`(?m)^(\s*<[A-Z][A-Z0-9._]*[A-Z0-9])$`)
)

// preprocess fixes common formatting issues in OFX files before parsing.
func (p *Parser) preprocess(content string) string {
	content = strings.TrimLeft(content, " \t\r\n")
	content = severityRegex.ReplaceAllStringFunc(content, strings.ToUpper)
	return tagFixRegex.ReplaceAllString(content, "$1>")
}

// ParseFile parses an OFX/QFX file and returns its debit charges. Credits
// are skipped; subscription detection only cares about money going out.
func (p *Parser) ParseFile(reader io.Reader) ([]Charge, error) {
	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read OFX file: %w", err)
	}

	resp, err := ofxgo.ParseResponse(strings.NewReader(p.preprocess(string(content))))
	if err != nil {
		return nil, fmt.Errorf("failed to parse OFX file: %w", err)
	}

	var charges []Charge

	for _, msg := range resp.Bank {
		if stmt, ok := msg.(*ofxgo.StatementResponse); ok && stmt.BankTranList != nil {
			charges = append(charges, p.convert(stmt.BankTranList.Transactions)...)
		}
	}
	for _, msg := range resp.CreditCard {
		if stmt, ok := msg.(*ofxgo.CCStatementResponse); ok && stmt.BankTranList != nil {
			charges = append(charges, p.convert(stmt.BankTranList.Transactions)...)
		}
	}

	return charges, nil
}

func (p *Parser) convert(transactions []ofxgo.Transaction) []Charge {
	var charges []Charge
	for _, ofxTx := range transactions {
		amount, _ := ofxTx.TrnAmt.Float64()
		// OFX uses negative amounts for debits.
		if amount >= 0 {
			continue
		}

		charges = append(charges, Charge{
			Date:   ofxTx.DtPosted.Time,
			Payee:  payeeName(ofxTx),
			Amount: -amount,
		})
	}
	return charges
}

// payeeName extracts the cleanest available payee name.
func payeeName(tx ofxgo.Transaction) string {
	if tx.Payee != nil && tx.Payee.Name != "" {
		return strings.TrimSpace(string(tx.Payee.Name))
	}
	name := strings.TrimSpace(string(tx.Name))
	if name == "" {
		name = strings.TrimSpace(string(tx.Memo))
	}
	return name
}
