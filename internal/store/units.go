package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/cppbonsai/cppbonsai/internal/ast"
)

// ErrUnitNotFound is returned when a translation unit is not in the store.
var ErrUnitNotFound = errors.New("unit not found")

// UnitInfo describes one stored translation unit.
type UnitInfo struct {
	Name       string `json:"name"`
	Workspace  string `json:"workspace"`
	SourceHash string `json:"source_hash"`
	ParsedAt   string `json:"parsed_at"`
	NodeCount  int    `json:"node_count"`
}

// SaveAST stores a normalized tree under the unit name, replacing any
// previous version. The whole write is one transaction so readers never see
// a half-replaced unit.
func (s *Store) SaveAST(workspace, sourceHash string, tree *ast.AST) error {
	return s.WithTransaction(func(tx *Store) error {
		if _, err := tx.q.Exec("DELETE FROM units WHERE name=?", tree.Name); err != nil {
			return fmt.Errorf("delete unit: %w", err)
		}
		if _, err := tx.q.Exec(
			"INSERT INTO units (name, workspace, source_hash, parsed_at) VALUES (?, ?, ?, ?)",
			tree.Name, workspace, sourceHash, Now()); err != nil {
			return fmt.Errorf("insert unit: %w", err)
		}
		for id, node := range tree.Nodes {
			if err := tx.insertNode(tree.Name, id, node); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *Store) insertNode(unit string, id ast.NodeID, node *ast.Node) error {
	children, err := json.Marshal(node.Children)
	if err != nil {
		return fmt.Errorf("marshal children: %w", err)
	}
	attrs, err := json.Marshal(node.Attributes)
	if err != nil {
		return fmt.Errorf("marshal attributes: %w", err)
	}
	_, err = s.q.Exec(`
		INSERT INTO nodes (unit, id, kind, parent, children, attributes, file, line, col)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		unit, int(id), node.Kind.String(), int(node.Parent),
		string(children), string(attrs),
		node.Location.File, node.Location.Line, node.Location.Column)
	if err != nil {
		return fmt.Errorf("insert node %d: %w", id, err)
	}
	return nil
}

// LoadAST reconstructs a stored tree by unit name.
func (s *Store) LoadAST(name string) (*ast.AST, error) {
	var exists int
	err := s.q.QueryRow("SELECT COUNT(*) FROM units WHERE name=?", name).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("query unit: %w", err)
	}
	if exists == 0 {
		return nil, fmt.Errorf("%w: %s", ErrUnitNotFound, name)
	}

	rows, err := s.q.Query(
		"SELECT id, kind, parent, children, attributes, file, line, col FROM nodes WHERE unit=?", name)
	if err != nil {
		return nil, fmt.Errorf("query nodes: %w", err)
	}
	defer rows.Close()

	tree := &ast.AST{Name: name, Nodes: make(map[ast.NodeID]*ast.Node)}
	for rows.Next() {
		node, err := scanASTNode(rows)
		if err != nil {
			return nil, err
		}
		tree.Nodes[node.ID] = node
	}
	return tree, rows.Err()
}

func scanASTNode(rows *sql.Rows) (*ast.Node, error) {
	var (
		id, parent, line, col int
		kindName, children    string
		attributes, file      string
	)
	if err := rows.Scan(&id, &kindName, &parent, &children, &attributes, &file, &line, &col); err != nil {
		return nil, fmt.Errorf("scan node: %w", err)
	}
	kind, ok := ast.KindFromName(kindName)
	if !ok {
		return nil, fmt.Errorf("unknown node kind %q", kindName)
	}
	node := &ast.Node{
		ID:       ast.NodeID(id),
		Kind:     kind,
		Parent:   ast.NodeID(parent),
		Location: ast.SourceLocation{File: file, Line: line, Column: col},
	}
	if err := json.Unmarshal([]byte(children), &node.Children); err != nil {
		return nil, fmt.Errorf("unmarshal children for node %d: %w", id, err)
	}
	if err := json.Unmarshal([]byte(attributes), &node.Attributes); err != nil {
		return nil, fmt.Errorf("unmarshal attributes for node %d: %w", id, err)
	}
	return node, nil
}

// GetUnit returns the stored metadata for one unit.
func (s *Store) GetUnit(name string) (*UnitInfo, error) {
	row := s.q.QueryRow(`
		SELECT u.name, u.workspace, u.source_hash, u.parsed_at,
			(SELECT COUNT(*) FROM nodes n WHERE n.unit = u.name)
		FROM units u WHERE u.name=?`, name)
	var info UnitInfo
	err := row.Scan(&info.Name, &info.Workspace, &info.SourceHash, &info.ParsedAt, &info.NodeCount)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrUnitNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("get unit: %w", err)
	}
	return &info, nil
}

// ListUnits returns metadata for every stored unit, ordered by name.
func (s *Store) ListUnits() ([]UnitInfo, error) {
	rows, err := s.q.Query(`
		SELECT u.name, u.workspace, u.source_hash, u.parsed_at,
			(SELECT COUNT(*) FROM nodes n WHERE n.unit = u.name)
		FROM units u ORDER BY u.name`)
	if err != nil {
		return nil, fmt.Errorf("list units: %w", err)
	}
	defer rows.Close()
	var units []UnitInfo
	for rows.Next() {
		var info UnitInfo
		if err := rows.Scan(&info.Name, &info.Workspace, &info.SourceHash, &info.ParsedAt, &info.NodeCount); err != nil {
			return nil, err
		}
		units = append(units, info)
	}
	return units, rows.Err()
}

// DeleteUnit removes a unit and its nodes.
func (s *Store) DeleteUnit(name string) error {
	_, err := s.q.Exec("DELETE FROM units WHERE name=?", name)
	return err
}
