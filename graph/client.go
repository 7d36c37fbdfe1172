package graph

import (
	"strings"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"golang.org/x/net/context"

	"github.com/fuad-daoud/discord-gateway/logger/dlog"
)

// Connection wraps a neo4j driver with explicit write transactions.
type Connection struct {
	driver neo4j.DriverWithContext
}

type Write func(stmts ...string) error
type TransactionExecute func(write Write) error

func Connect(uri, user, password string) (*Connection, error) {
	driver, err := neo4j.NewDriverWithContext(uri, neo4j.BasicAuth(user, password, ""))
	if err != nil {
		dlog.Error("Error connecting to Neo4j", "err", err)
		return nil, err
	}
	if err := driver.VerifyConnectivity(context.Background()); err != nil {
		dlog.Error("Error connecting to Neo4j", "err", err)
		return nil, err
	}
	dlog.Info("Graph connection established.", "URI", uri)
	return &Connection{driver: driver}, nil
}

func (conn *Connection) Transaction(execute TransactionExecute) error {
	ctx := context.Background()
	session := conn.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer func() { _ = session.Close(ctx) }()
	transaction, err := session.BeginTransaction(ctx)
	if err != nil {
		dlog.Error("Transaction failed", "err", err)
		return err
	}

	err = execute(txWrite(transaction, ctx))
	if err != nil {
		_ = transaction.Rollback(ctx)
		return err
	}
	err = transaction.Commit(ctx)
	if err != nil {
		err2 := transaction.Rollback(ctx)
		if err2 != nil {
			dlog.Error("Rollback failed", "err", err2)
			return err2
		}
		dlog.Error("Transaction failed", "err", err)
		return err
	}
	return nil
}

func txWrite(transaction neo4j.ExplicitTransaction, ctx context.Context) Write {
	return func(stmts ...string) error {
		stmt := strings.Join(stmts, " ")
		dlog.Debug("Writing ", "stmt", stmt)
		_, err := transaction.Run(ctx, stmt, make(map[string]any))
		if err != nil {
			dlog.Error("Transaction run failed", "err", err)
			return err
		}
		return nil
	}
}

func (conn *Connection) Query(stmts ...string) ([]*neo4j.Record, error) {
	stmt := strings.Join(stmts, " ")
	dlog.Debug("Querying ", "stmt", stmt)
	result, err := neo4j.ExecuteQuery(context.Background(), conn.driver, stmt, make(map[string]any), neo4j.EagerResultTransformer, neo4j.ExecuteQueryWithDatabase("neo4j"))
	if err != nil {
		dlog.Error("Error executing query", "err", err)
		return nil, err
	}
	return result.Records, nil
}

func (conn *Connection) Close() {
	_ = conn.driver.Close(context.Background())
	dlog.Info("Graph connection closed.")
}
