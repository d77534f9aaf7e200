package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestRegistryHeartbeatAndExpiry(t *testing.T) {
	reg := NewRegistry(time.Minute)
	defer reg.Stop()

	id := reg.Register(ServerInfo{Name: "test", Address: "localhost:7373", Arena: "courtyard", MaxPlayers: 8})
	if id == "" {
		t.Fatal("expected non-empty id")
	}

	if !reg.Heartbeat(id, 3, "crossfire") {
		t.Fatal("heartbeat for known id should succeed")
	}
	if reg.Heartbeat("bogus", 0, "") {
		t.Fatal("heartbeat for unknown id should fail")
	}

	list := reg.List()
	if len(list) != 1 {
		t.Fatalf("expected 1 server, got %d", len(list))
	}
	if list[0].Players != 3 || list[0].Arena != "crossfire" {
		t.Fatalf("heartbeat did not update record: %+v", list[0])
	}

	reg.expire(time.Now().Add(2 * time.Minute))
	if len(reg.List()) != 0 {
		t.Fatal("expected server to expire past TTL")
	}
}

func TestRegisterAndHeartbeatHandlers(t *testing.T) {
	reg := NewRegistry(time.Minute)
	defer reg.Stop()

	body, _ := json.Marshal(registerRequest{
		Name:    "test",
		Address: "localhost:7373",
		Arena:   "courtyard",
	})
	rr := httptest.NewRecorder()
	RegisterServer(reg)(rr, httptest.NewRequest(http.MethodPost, "/servers/register", bytes.NewReader(body)))
	if rr.Code != http.StatusCreated {
		t.Fatalf("register: expected 201, got %d", rr.Code)
	}

	var resp registerResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode register response: %v", err)
	}

	hb, _ := json.Marshal(heartbeatRequest{ID: resp.ID, Players: 2})
	rr = httptest.NewRecorder()
	Heartbeat(reg)(rr, httptest.NewRequest(http.MethodPost, "/servers/heartbeat", bytes.NewReader(hb)))
	if rr.Code != http.StatusOK {
		t.Fatalf("heartbeat: expected 200, got %d", rr.Code)
	}

	hb, _ = json.Marshal(heartbeatRequest{ID: "bogus"})
	rr = httptest.NewRecorder()
	Heartbeat(reg)(rr, httptest.NewRequest(http.MethodPost, "/servers/heartbeat", bytes.NewReader(hb)))
	if rr.Code != http.StatusNotFound {
		t.Fatalf("heartbeat unknown id: expected 404, got %d", rr.Code)
	}
}

func TestListServersVersionFilter(t *testing.T) {
	reg := NewRegistry(time.Minute)
	defer reg.Stop()

	reg.Register(ServerInfo{Name: "old", Address: "a:1", Version: "0.1.0"})
	reg.Register(ServerInfo{Name: "new", Address: "b:1", Version: "0.2.0"})

	rr := httptest.NewRecorder()
	ListServers(reg)(rr, httptest.NewRequest(http.MethodGet, "/servers?version=0.2.0", nil))

	var servers []ServerInfo
	if err := json.NewDecoder(rr.Body).Decode(&servers); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(servers) != 1 || servers[0].Name != "new" {
		t.Fatalf("expected only the matching version, got %+v", servers)
	}
}

func TestRegisterHandlerRejectsIncomplete(t *testing.T) {
	reg := NewRegistry(time.Minute)
	defer reg.Stop()

	body, _ := json.Marshal(registerRequest{Name: "no-address"})
	rr := httptest.NewRecorder()
	RegisterServer(reg)(rr, httptest.NewRequest(http.MethodPost, "/servers/register", bytes.NewReader(body)))
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}
