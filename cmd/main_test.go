package main

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/DucQuyen199/quanlybongda/config"
)

func TestNewLogoResolverDisabled(t *testing.T) {
	logos, err := newLogoResolver(context.Background(), config.StorageConfig{})
	if err != nil {
		t.Fatalf("newLogoResolver: %v", err)
	}
	if logos != nil {
		t.Fatalf("expected no resolver, got %T", logos)
	}
}

func TestNewLogoResolverPublicBaseOnly(t *testing.T) {
	logos, err := newLogoResolver(context.Background(), config.StorageConfig{
		PublicBaseURL: "https://cdn.example.com/logos",
	})
	if err != nil {
		t.Fatalf("newLogoResolver: %v", err)
	}
	got, err := logos.LogoURL(context.Background(), "teams/TEAM001.png")
	if err != nil {
		t.Fatalf("LogoURL: %v", err)
	}
	if got != "https://cdn.example.com/logos/teams/TEAM001.png" {
		t.Fatalf("url = %q", got)
	}
}

func TestNewLogoResolverBucket(t *testing.T) {
	cfg := config.StorageConfig{
		Endpoint:        "http://localhost:9000",
		Region:          "us-east-1",
		AccessKeyID:     "test-access",
		SecretAccessKey: "test-secret",
		Bucket:          "logos",
		PresignTTL:      5 * time.Minute,
	}
	logos, err := newLogoResolver(context.Background(), cfg)
	if err != nil {
		t.Fatalf("newLogoResolver: %v", err)
	}
	got, err := logos.LogoURL(context.Background(), "teams/TEAM001.png")
	if err != nil {
		t.Fatalf("LogoURL: %v", err)
	}
	if !strings.HasPrefix(got, "http://localhost:9000/logos/teams/TEAM001.png?") {
		t.Fatalf("url = %q", got)
	}

	cfg.AccessKeyID, cfg.SecretAccessKey = "", ""
	if _, err := newLogoResolver(context.Background(), cfg); err == nil {
		t.Fatal("expected an error without credentials")
	}
}
