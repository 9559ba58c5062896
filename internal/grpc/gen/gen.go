// Package entitlementspb содержит сгенерированные из internal/grpc/proto сообщения
// и заглушки gRPC сервиса entitlements.v1.Entitlements.
package entitlementspb

//go:generate protoc -I ../proto --go_out=. --go_opt=paths=source_relative --go-grpc_out=. --go-grpc_opt=paths=source_relative ../proto/entitlements.proto
