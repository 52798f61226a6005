// Package toml provides a parser for the oradialect TOML schema format.
// It reads a backend-agnostic schema definition from a .toml file and
// converts it into the core.Database representation the Oracle dialect
// generates DDL from.
package toml

import (
	"fmt"
	"io"
	"os"
	"regexp"

	"github.com/BurntSushi/toml"

	"oradialect/internal/core"
)

// oracleMaxIdentLen is the identifier length limit of Oracle 12.2 and later.
const oracleMaxIdentLen = 128

// schemaFile is the top-level TOML document.
type schemaFile struct {
	Database   tomlDatabase    `toml:"database"`
	Validation *tomlValidation `toml:"validation"`
	Tables     []tomlTable     `toml:"tables"`
}

// tomlDatabase maps [database].
type tomlDatabase struct {
	Name string `toml:"name"`
}

// tomlValidation maps [validation].
type tomlValidation struct {
	MaxTableNameLength  int    `toml:"max_table_name_length"`
	MaxColumnNameLength int    `toml:"max_column_name_length"`
	AllowedNamePattern  string `toml:"allowed_name_pattern"`
}

// Parser reads oradialect TOML schema files.
type Parser struct{}

// NewParser creates a new TOML schema parser.
func NewParser() *Parser {
	return &Parser{}
}

// ParseFile opens the file at the given path and parses it as a TOML schema.
func (p *Parser) ParseFile(path string) (*core.Database, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("toml: open file %q: %w", path, err)
	}
	defer f.Close()

	return p.Parse(f)
}

// Parse reads TOML content from reader and returns the corresponding core.Database.
func (p *Parser) Parse(r io.Reader) (*core.Database, error) {
	var sf schemaFile
	if _, err := toml.NewDecoder(r).Decode(&sf); err != nil {
		return nil, fmt.Errorf("toml: decode error: %w", err)
	}

	return newConverter(&sf).convert()
}

type converter struct {
	sf          *schemaFile
	maxTable    int
	maxColumn   int
	nameRe      *regexp.Regexp
	seenTables  map[string]bool
	seenIndexes map[string]bool
}

func newConverter(sf *schemaFile) *converter {
	return &converter{
		sf:          sf,
		maxTable:    oracleMaxIdentLen,
		maxColumn:   oracleMaxIdentLen,
		seenTables:  make(map[string]bool, len(sf.Tables)),
		seenIndexes: make(map[string]bool),
	}
}

func (c *converter) convert() (*core.Database, error) {
	if err := c.validateRules(); err != nil {
		return nil, err
	}

	db := &core.Database{
		Name:   c.sf.Database.Name,
		Tables: make([]*core.Table, 0, len(c.sf.Tables)),
	}

	for i := range c.sf.Tables {
		t, err := c.convertTable(&c.sf.Tables[i])
		if err != nil {
			return nil, fmt.Errorf("toml: table %q: %w", c.sf.Tables[i].Name, err)
		}
		db.Tables = append(db.Tables, t)
	}

	return db, nil
}

// validateRules applies [validation] and pre-compiles the name regex.
// Limits above Oracle's own identifier limit are capped.
func (c *converter) validateRules() error {
	v := c.sf.Validation
	if v == nil {
		return nil
	}

	if v.MaxTableNameLength > 0 && v.MaxTableNameLength < oracleMaxIdentLen {
		c.maxTable = v.MaxTableNameLength
	}
	if v.MaxColumnNameLength > 0 && v.MaxColumnNameLength < oracleMaxIdentLen {
		c.maxColumn = v.MaxColumnNameLength
	}

	if v.AllowedNamePattern != "" {
		re, err := regexp.Compile(v.AllowedNamePattern)
		if err != nil {
			return fmt.Errorf("toml: invalid allowed_name_pattern %q: %w", v.AllowedNamePattern, err)
		}
		c.nameRe = re
	}

	return nil
}
