package utility

import "testing"

func TestCreateAndParseToken(t *testing.T) {
	secret := "test-secret"
	data, err := CreateToken(secret, "68b9a1f2c3d4e5f601234567", "abc", "42", 1)
	if err != nil {
		t.Fatalf("CreateToken lỗi: %v", err)
	}
	signed, ok := data["token"]
	if !ok || signed == "" {
		t.Fatal("CreateToken phải trả về map có key 'token'")
	}

	claims, err := ParseToken(secret, signed)
	if err != nil {
		t.Fatalf("ParseToken lỗi trên token vừa ký: %v", err)
	}
	if claims.UserID != "68b9a1f2c3d4e5f601234567" {
		t.Errorf("UserID không khớp, nhận được %q", claims.UserID)
	}
	if claims.Session != "abc42" {
		t.Errorf("Session phải là session+nonce, nhận được %q", claims.Session)
	}

	// Sai secret phải bị từ chối
	if _, err := ParseToken("secret-khác", signed); err == nil {
		t.Error("token ký bằng secret khác phải bị từ chối")
	}
}
